package logic

import "fmt"

// FormatStats renders the settled stats line
func FormatStats(total int, elapsedMs float64) string {
	return fmt.Sprintf("About %d results (%.3f seconds)", total, elapsedMs/1000)
}

// FormatSize renders a byte size as kilobytes to one decimal, or a
// fallback when the size is absent
func FormatSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "Size unknown"
	}
	return fmt.Sprintf("%.1f KB", float64(sizeBytes)/1024)
}

// FormatScore renders a relevance score to four decimals
func FormatScore(score float64) string {
	return fmt.Sprintf("%.4f", score)
}
