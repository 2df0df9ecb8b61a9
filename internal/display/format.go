// Package display provides human-readable formatting for sizes,
// durations, and space-saved percentages shown in progress stats and
// the batch results table.
package display

import "fmt"

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// FormatSize returns a human-readable size with binary-unit thresholds
// (B, KB, MB, GB at multiples of 1024).
func FormatSize(bytes int64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration returns "1h:02m:15s" for durations of an hour or more,
// "2m:05s" otherwise. Sub-second precision is dropped.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh:%02dm:%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm:%02ds", m, s)
}

// FormatPercentSaved returns "(1 - output/input) * 100" as "NN.N%" when
// both sizes are known and positive, "—" otherwise. Negative results
// (output grew) are kept, e.g. "-12.5%".
func FormatPercentSaved(inputBytes, outputBytes int64) string {
	if inputBytes <= 0 || outputBytes <= 0 {
		return "—"
	}
	pct := (1 - float64(outputBytes)/float64(inputBytes)) * 100
	return fmt.Sprintf("%.1f%%", pct)
}
