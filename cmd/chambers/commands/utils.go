// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Output format selection, truncation and time rendering
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// wantJSON reports whether output should be JSON
func wantJSON() bool {
	return outputFormat == "json"
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", jsonData)
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime renders a time relative to now, falling back to a date after a week
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	if time.Since(t) > 7*24*time.Hour {
		return t.Format("2006-01-02")
	}
	return humanize.Time(t)
}

// formatSizeKB renders a size given in kilobytes
func formatSizeKB(kb float64) string {
	return humanize.Bytes(uint64(kb * 1024))
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
