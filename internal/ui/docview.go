package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"github.com/utcofficial/sophon-search/internal/client"
	"github.com/utcofficial/sophon-search/internal/domain"
)

// openSelectedDocument fetches the full document behind the selected
// result card and shows it in the ov pager
func (m *Model) openSelectedDocument() tea.Cmd {
	if m.orch.Phase() != domain.PhaseSettled {
		return nil
	}
	results := m.orch.ViewModel().Results
	if len(results) == 0 || m.resultCursor >= len(results) {
		return nil
	}

	id := results[m.resultCursor].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		doc, err := m.api.Document(ctx, id)
		if err != nil {
			return docPagerMsg{err: err}
		}
		return docPagerMsg{err: m.showDocumentInPager(doc)}
	}
}

// showDocumentInPager hands the terminal to ov for the document content
func (m *Model) showDocumentInPager(doc *client.Document) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay so ov has fully exited before restoring the screen
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	title := doc.Title
	if title == "" {
		title = doc.DocID
	}
	content := title + "\n" + strings.Repeat("=", len(title)) + "\n\n" + doc.Content

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write pager content on exit, it would mess with our screen
	ovcfg := oviewer.NewConfig()
	ovcfg.IsWriteOnExit = false
	ovcfg.IsWriteOriginal = false
	root.SetConfig(ovcfg)

	return root.Run()
}
