// Package codec holds the static tables of supported video encoders,
// audio encoders, output containers, and named encoding presets. The
// tables drive flag validation, command building, and the --check flow;
// nothing here touches ffmpeg at runtime.
package codec

// VideoCodec describes one supported video encoder.
type VideoCodec struct {
	ID          string // internal key, e.g. "libx264"
	Label       string // display name, e.g. "H.264 (libx264)"
	Encoder     string // ffmpeg encoder name
	Description string

	CRFMin     int
	CRFMax     int
	CRFDefault int

	// Presets is the encoder's speed/effort scale. Empty means the
	// encoder takes no preset flag (libvpx-vp9 uses -speed instead,
	// see job.BuildCommand).
	Presets       []string
	PresetDefault string

	// Hardware encoders take -cq instead of -crf.
	Hardware bool
}

var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow",
}

var nvencPresets = []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}

// VideoCodecs lists every supported video encoder in display order.
var VideoCodecs = []VideoCodec{
	{
		ID:          "libx264",
		Label:       "H.264 (libx264)",
		Encoder:     "libx264",
		Description: "Universal. Fast. Good quality.",
		CRFMin:      0, CRFMax: 51, CRFDefault: 23,
		Presets:       x264Presets,
		PresetDefault: "medium",
	},
	{
		ID:          "libx265",
		Label:       "H.265 / HEVC (libx265)",
		Encoder:     "libx265",
		Description: "50% smaller. Slower encode.",
		CRFMin:      0, CRFMax: 51, CRFDefault: 28,
		Presets:       x264Presets,
		PresetDefault: "medium",
	},
	{
		ID:          "libsvtav1",
		Label:       "AV1 (SVT-AV1)",
		Encoder:     "libsvtav1",
		Description: "Best compression. Very slow.",
		CRFMin:      0, CRFMax: 63, CRFDefault: 30,
		Presets: []string{
			"0", "1", "2", "3", "4", "5", "6",
			"7", "8", "9", "10", "11", "12", "13",
		},
		PresetDefault: "6",
	},
	{
		ID:          "libvpx-vp9",
		Label:       "VP9 (libvpx-vp9)",
		Encoder:     "libvpx-vp9",
		Description: "Good for web. Moderate speed.",
		CRFMin:      0, CRFMax: 63, CRFDefault: 30,
	},
	{
		ID:          "h264_nvenc",
		Label:       "H.264 (NVENC)",
		Encoder:     "h264_nvenc",
		Description: "NVIDIA GPU. Very fast.",
		CRFMin:      0, CRFMax: 51, CRFDefault: 23,
		Presets:       nvencPresets,
		PresetDefault: "p4",
		Hardware:      true,
	},
	{
		ID:          "hevc_nvenc",
		Label:       "H.265 (NVENC)",
		Encoder:     "hevc_nvenc",
		Description: "NVIDIA GPU. Very fast.",
		CRFMin:      0, CRFMax: 51, CRFDefault: 28,
		Presets:       nvencPresets,
		PresetDefault: "p4",
		Hardware:      true,
	},
}

// AudioCodec describes one supported audio encoder. Encoder "copy"
// passes the source stream through; "" drops audio entirely.
type AudioCodec struct {
	ID             string
	Label          string
	Encoder        string
	DefaultBitrate string
}

// AudioCodecs lists every supported audio codec in display order.
var AudioCodecs = []AudioCodec{
	{ID: "aac", Label: "AAC", Encoder: "aac", DefaultBitrate: "128k"},
	{ID: "libopus", Label: "Opus", Encoder: "libopus", DefaultBitrate: "128k"},
	{ID: "copy", Label: "Copy (no re-encode)", Encoder: "copy"},
	{ID: "libmp3lame", Label: "MP3", Encoder: "libmp3lame", DefaultBitrate: "192k"},
	{ID: "none", Label: "No audio", Encoder: ""},
}

// Container describes one output container format.
type Container struct {
	ID          string
	Label       string
	Extension   string // with leading dot
	Description string
}

// Containers lists every supported output container in display order.
var Containers = []Container{
	{ID: "mp4", Label: "MP4", Extension: ".mp4", Description: "Most compatible"},
	{ID: "mkv", Label: "MKV", Extension: ".mkv", Description: "Supports everything"},
	{ID: "webm", Label: "WebM", Extension: ".webm", Description: "Web streaming"},
}

// DefaultContainer maps each video codec to its suggested container.
var DefaultContainer = map[string]string{
	"libx264":    "mp4",
	"libx265":    "mkv",
	"libsvtav1":  "mkv",
	"libvpx-vp9": "webm",
	"h264_nvenc": "mp4",
	"hevc_nvenc": "mkv",
}

// EncodingPreset is a named full configuration: codec + quality +
// audio + container, selectable with a single flag.
type EncodingPreset struct {
	Name         string
	VideoCodecID string
	CRF          int
	Preset       string
	AudioCodecID string
	AudioBitrate string
	ContainerID  string
}

// Presets lists the built-in named encoding presets.
var Presets = []EncodingPreset{
	{"web-upload", "libx264", 18, "slow", "aac", "192k", "mp4"},
	{"archive-small", "libx265", 23, "medium", "aac", "128k", "mkv"},
	{"archive-quality", "libx265", 18, "slow", "aac", "192k", "mkv"},
	{"web-streaming", "libvpx-vp9", 30, "", "libopus", "128k", "webm"},
	{"av1", "libsvtav1", 30, "6", "libopus", "128k", "mkv"},
	{"gpu-h264", "h264_nvenc", 23, "p4", "copy", "", "mp4"},
	{"gpu-h265", "hevc_nvenc", 28, "p4", "copy", "", "mkv"},
}

// ScaleHeights are the supported downscale targets (aspect preserved).
// 0 keeps the source resolution.
var ScaleHeights = []int{2160, 1440, 1080, 720, 480, 360}

// VideoByID returns the video codec for id, or nil.
func VideoByID(id string) *VideoCodec {
	for i := range VideoCodecs {
		if VideoCodecs[i].ID == id {
			return &VideoCodecs[i]
		}
	}
	return nil
}

// AudioByID returns the audio codec for id, or nil.
func AudioByID(id string) *AudioCodec {
	for i := range AudioCodecs {
		if AudioCodecs[i].ID == id {
			return &AudioCodecs[i]
		}
	}
	return nil
}

// ContainerByID returns the container for id, or nil.
func ContainerByID(id string) *Container {
	for i := range Containers {
		if Containers[i].ID == id {
			return &Containers[i]
		}
	}
	return nil
}

// PresetByName returns the named encoding preset, or nil.
func PresetByName(name string) *EncodingPreset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

// SupportsPreset reports whether name is a valid speed preset for the
// codec. An empty name is always accepted (meaning "no preset flag").
func (c *VideoCodec) SupportsPreset(name string) bool {
	if name == "" {
		return true
	}
	for _, p := range c.Presets {
		if p == name {
			return true
		}
	}
	return false
}
