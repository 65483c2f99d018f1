package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/config"
	"github.com/utcofficial/sophon-search/internal/eventbus"
	"github.com/utcofficial/sophon-search/internal/history"
	"github.com/utcofficial/sophon-search/internal/ui"
)

func main() {
	var queryFlag string
	var configPath string
	var baseURL string
	flag.StringVar(&queryFlag, "query", "", "Query to search immediately on startup")
	flag.StringVar(&queryFlag, "q", "", "Query to search immediately on startup (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&baseURL, "base-url", "", "Override backend base URL")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("sophon.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Load configuration
	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	} else {
		configSvc = config.NewConfigService()
	}
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// HTTP collaborators share one injected base URL and timeout
	api := client.New(client.Options{
		BaseURL:        cfg.BaseURL,
		RequestTimeout: cfg.RequestTimeout(),
	})

	// Search history is optional; the UI degrades without it
	hist, err := history.NewStore(cfg.HistoryDB)
	if err != nil {
		log.Printf("History store unavailable: %v", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	// Record every committed query through the bus
	if hist != nil {
		bus.Subscribe(eventbus.EventQueryCommitted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.QueryCommittedEvent); ok {
				if err := hist.Record(event.Query); err != nil {
					log.Printf("Failed to record history: %v", err)
				}
			}
		})
	}
	bus.Subscribe(eventbus.EventSearchSettled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchSettledEvent); ok {
			log.Printf("Search settled: query=%q total=%d elapsed=%.1fms",
				event.Query, event.TotalResults, event.ElapsedMs)
		}
	})
	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search failed: query=%q: %s", event.Query, event.Message)
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})

	// Session replay: the -q flag wins, then the saved session
	sessions := config.NewSessionStore()
	initialQuery := queryFlag
	if initialQuery == "" {
		if sess, err := sessions.Load(); err == nil {
			initialQuery = sess.Query
		} else {
			log.Printf("Error loading session: %v", err)
		}
	}

	uiModel := ui.NewModel(cfg, bus, api, hist, sessions, initialQuery)

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
