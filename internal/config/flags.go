package config

// This file implements CLI flag parsing and help text. Encode flags are
// tracked in ExplicitFlags so that a named preset (-P) only fills the
// settings the user did not set explicitly.

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wesen/encodeq/internal/codec"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// ExplicitFlags records which encode flags the user passed on the
// command line. ApplyDefaults consults it for preset precedence.
type ExplicitFlags struct {
	VideoCodec   bool
	AudioCodec   bool
	Container    bool
	CRF          bool
	Preset       bool
	AudioBitrate bool
}

// ParseFlags parses args (os.Args[1:] in production) into cfg and
// returns which encode flags were set explicitly. On --help or
// --version it prints and exits. On error it returns non-nil.
func ParseFlags(cfg *Config, args []string) (ExplicitFlags, error) {
	fs := flag.NewFlagSet("encodeq", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var showHelp, showVersion, forceColor, noColor bool

	fs.StringVar(&cfg.VideoCodecID, "codec", cfg.VideoCodecID, "Video codec id")
	fs.StringVar(&cfg.VideoCodecID, "c", cfg.VideoCodecID, "Same as --codec")
	fs.StringVar(&cfg.AudioCodecID, "audio", cfg.AudioCodecID, "Audio codec id")
	fs.StringVar(&cfg.AudioCodecID, "a", cfg.AudioCodecID, "Same as --audio")
	fs.StringVar(&cfg.ContainerID, "container", cfg.ContainerID, "Output container: mp4 | mkv | webm")
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "Quality (CRF/CQ value)")
	fs.IntVar(&cfg.CRF, "q", cfg.CRF, "Same as --crf")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "Encoder speed preset")
	fs.StringVar(&cfg.Preset, "p", cfg.Preset, "Same as --preset")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "Audio bitrate (e.g. 128k)")
	fs.StringVar(&cfg.AudioBitrate, "b", cfg.AudioBitrate, "Same as --audio-bitrate")
	fs.IntVar(&cfg.ScaleHeight, "scale", cfg.ScaleHeight, "Downscale to height (e.g. 1080); 0 keeps source")
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory (default: next to input)")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output-dir")
	fs.StringVar(&cfg.PresetName, "profile", cfg.PresetName, "Named encoding preset (e.g. archive-small)")
	fs.StringVar(&cfg.PresetName, "P", cfg.PresetName, "Same as --profile")

	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return ExplicitFlags{}, err
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "encodeq v"+version)
		os.Exit(0)
	}

	cfg.Inputs = fs.Args()
	return explicitFlags(fs), nil
}

// explicitFlags inspects which encode flags were visited during Parse.
func explicitFlags(fs *flag.FlagSet) ExplicitFlags {
	var ex ExplicitFlags
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "codec", "c":
			ex.VideoCodec = true
		case "audio", "a":
			ex.AudioCodec = true
		case "container":
			ex.Container = true
		case "crf", "q":
			ex.CRF = true
		case "preset", "p":
			ex.Preset = true
		case "audio-bitrate", "b":
			ex.AudioBitrate = true
		}
	})
	return ex
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "encodeq v" + version + ": batch video encoder with a sequential job queue"},
		{"", ""},
		{"  encodeq [OPTIONS] <file>...", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -c, --codec <id>", "Video codec: " + idList(videoIDs())},
		{"  -q, --crf <value>", "Quality (lower = better; default per codec)"},
		{"  -p, --preset <name>", "Encoder speed preset (default per codec)"},
		{"  -a, --audio <id>", "Audio codec: " + idList(audioIDs())},
		{"  -b, --audio-bitrate <rate>", "Audio bitrate (default per codec, e.g. 128k)"},
		{"  --container <id>", "Output container: mp4 | mkv | webm"},
		{"  --scale <height>", "Downscale to height, aspect preserved (e.g. 1080)"},
		{"  -P, --profile <name>", "Named preset: " + idList(presetNames())},
		{"", ""},
		{"Output", ""},
		{"  -o, --output-dir <dir>", "Write outputs here (default: next to each input)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (full ffmpeg log)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --check", "System diagnostics (ffmpeg, ffprobe, encoders)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

func videoIDs() []string {
	ids := make([]string, len(codec.VideoCodecs))
	for i, c := range codec.VideoCodecs {
		ids[i] = c.ID
	}
	return ids
}

func audioIDs() []string {
	ids := make([]string, len(codec.AudioCodecs))
	for i, c := range codec.AudioCodecs {
		ids[i] = c.ID
	}
	return ids
}

func presetNames() []string {
	names := make([]string, len(codec.Presets))
	for i, p := range codec.Presets {
		names[i] = p.Name
	}
	return names
}

func idList(ids []string) string { return strings.Join(ids, " | ") }
