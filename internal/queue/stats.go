package queue

import (
	"fmt"
	"time"

	"github.com/wesen/encodeq/internal/display"
	"github.com/wesen/encodeq/internal/progress"
)

// formatStats renders the live stats block for one progress sample:
// frame/fps/speed, output size and bitrate, elapsed wall time, ETA, and
// percent complete.
func formatStats(s *progress.Sample, elapsed time.Duration, paused bool) string {
	sizeStr := progress.Unknown
	if s.TotalSize >= 0 {
		sizeStr = display.FormatSize(s.TotalSize)
	}

	pauseIndicator := ""
	if paused {
		pauseIndicator = "  ⏸ PAUSED"
	}

	return fmt.Sprintf(
		"Frame: %s  FPS: %s  Speed: %s%s\n"+
			"Size: %s  Bitrate: %s\n"+
			"Elapsed: %s  ETA: %s  Progress: %.1f%%",
		s.Frame, s.FPS, s.Speed, pauseIndicator,
		sizeStr, s.Bitrate,
		display.FormatDuration(elapsed.Seconds()),
		formatETA(elapsed, s.Fraction),
		s.Fraction,
	)
}

// formatETA estimates remaining wall time from elapsed time and the
// completion fraction: elapsed / (fraction/100) - elapsed. Unknown
// until the first nonzero fraction.
func formatETA(elapsed time.Duration, fraction float64) string {
	if fraction <= 0 {
		return progress.Unknown
	}
	remaining := elapsed.Seconds()/(fraction/100) - elapsed.Seconds()
	return display.FormatDuration(remaining)
}
