// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation against the codec tables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wesen/encodeq/internal/codec"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by [ParseFlags] before being passed (by pointer) to
// packages that need it. The encode fields become the immutable per-job
// configuration when the batch is built.
type Config struct {
	// Input files (positional args) and output directory.
	Inputs    []string
	OutputDir string // empty = same directory as each input

	// Encode settings.
	VideoCodecID string // Default: "libx264".
	AudioCodecID string // Default: "aac".
	ContainerID  string // Empty = codec's suggested container.
	CRF          int    // Resolved by ApplyDefaults; -1 = codec default.
	Preset       string // Empty = codec default.
	AudioBitrate string // Empty = audio codec default.
	ScaleHeight  int    // 0 = keep source resolution.

	// PresetName selects a named encoding preset applied before the
	// individual encode flags.
	PresetName string

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		VideoCodecID: "libx264",
		AudioCodecID: "aac",
		CRF:          -1,
		ColorMode:    ColorAuto,
	}
}

// ApplyDefaults fills unset fields from the codec tables: named preset
// first, then per-codec container/CRF/preset defaults and the audio
// codec's default bitrate. Call after ParseFlags, before Validate.
func (c *Config) ApplyDefaults(explicit ExplicitFlags) error {
	if c.PresetName != "" {
		p := codec.PresetByName(c.PresetName)
		if p == nil {
			return fmt.Errorf("unknown preset %q (see --help for the list)", c.PresetName)
		}
		if !explicit.VideoCodec {
			c.VideoCodecID = p.VideoCodecID
		}
		if !explicit.AudioCodec {
			c.AudioCodecID = p.AudioCodecID
		}
		if !explicit.Container {
			c.ContainerID = p.ContainerID
		}
		if !explicit.CRF {
			c.CRF = p.CRF
		}
		if !explicit.Preset {
			c.Preset = p.Preset
		}
		if !explicit.AudioBitrate {
			c.AudioBitrate = p.AudioBitrate
		}
	}

	vc := codec.VideoByID(c.VideoCodecID)
	if vc == nil {
		return fmt.Errorf("unknown video codec %q", c.VideoCodecID)
	}
	if c.ContainerID == "" {
		c.ContainerID = codec.DefaultContainer[vc.ID]
	}
	if c.CRF < 0 {
		c.CRF = vc.CRFDefault
	}
	if c.Preset == "" && !explicit.Preset && c.PresetName == "" {
		c.Preset = vc.PresetDefault
	}
	if c.AudioBitrate == "" {
		if ac := codec.AudioByID(c.AudioCodecID); ac != nil {
			c.AudioBitrate = ac.DefaultBitrate
		}
	}
	return nil
}

// Validate checks every encode field against the codec tables. When not
// in CheckOnly mode it also requires at least one input file.
func (c *Config) Validate() error {
	vc := codec.VideoByID(c.VideoCodecID)
	if vc == nil {
		return fmt.Errorf("unknown video codec %q", c.VideoCodecID)
	}
	if codec.AudioByID(c.AudioCodecID) == nil {
		return fmt.Errorf("unknown audio codec %q", c.AudioCodecID)
	}
	if codec.ContainerByID(c.ContainerID) == nil {
		return fmt.Errorf("unknown container %q (use mp4, mkv, or webm)", c.ContainerID)
	}
	if c.CRF < vc.CRFMin || c.CRF > vc.CRFMax {
		return fmt.Errorf("CRF %d out of range for %s (valid: %d-%d)",
			c.CRF, vc.ID, vc.CRFMin, vc.CRFMax)
	}
	if !vc.SupportsPreset(c.Preset) {
		return fmt.Errorf("preset %q not valid for %s (valid: %s)",
			c.Preset, vc.ID, strings.Join(vc.Presets, ", "))
	}
	if c.AudioBitrate != "" {
		normalized, err := normalizeAudioBitrate(c.AudioBitrate)
		if err != nil {
			return err
		}
		c.AudioBitrate = normalized
	}
	if c.ScaleHeight != 0 && !validScaleHeight(c.ScaleHeight) {
		return fmt.Errorf("unsupported scale height %d (valid: %s)",
			c.ScaleHeight, scaleHeightList())
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("no input files given")
	}
	return nil
}

// validScaleHeight reports whether h is one of the supported targets.
func validScaleHeight(h int) bool {
	for _, s := range codec.ScaleHeights {
		if s == h {
			return true
		}
	}
	return false
}

func scaleHeightList() string {
	parts := make([]string, len(codec.ScaleHeights))
	for i, s := range codec.ScaleHeights {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "256", "256k", "256K", "256kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 128k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
