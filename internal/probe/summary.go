package probe

import (
	"strings"

	"github.com/wesen/encodeq/internal/display"
)

// Summary returns a one-line description of the probed file:
// resolution, codec, duration, size. Used by the file list display.
func (r *Result) Summary() string {
	var parts []string
	if r.Video != nil {
		parts = append(parts, r.Resolution(), strings.ToUpper(r.Video.Codec))
	}
	parts = append(parts,
		display.FormatDuration(r.Duration),
		display.FormatSize(r.Size),
	)
	return strings.Join(parts, " ")
}
