package config

import (
	"strings"
	"testing"
)

func TestApplyDefaults_CodecTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs = []string{"in.mp4"}
	if err := cfg.ApplyDefaults(ExplicitFlags{}); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}

	if cfg.ContainerID != "mp4" {
		t.Errorf("ContainerID = %q, want mp4 (libx264 default)", cfg.ContainerID)
	}
	if cfg.CRF != 23 {
		t.Errorf("CRF = %d, want 23 (libx264 default)", cfg.CRF)
	}
	if cfg.Preset != "medium" {
		t.Errorf("Preset = %q, want medium", cfg.Preset)
	}
	if cfg.AudioBitrate != "128k" {
		t.Errorf("AudioBitrate = %q, want 128k (aac default)", cfg.AudioBitrate)
	}
}

func TestApplyDefaults_NamedPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PresetName = "archive-small"
	if err := cfg.ApplyDefaults(ExplicitFlags{}); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}

	if cfg.VideoCodecID != "libx265" {
		t.Errorf("VideoCodecID = %q, want libx265", cfg.VideoCodecID)
	}
	if cfg.CRF != 23 {
		t.Errorf("CRF = %d, want 23", cfg.CRF)
	}
	if cfg.ContainerID != "mkv" {
		t.Errorf("ContainerID = %q, want mkv", cfg.ContainerID)
	}
}

func TestApplyDefaults_ExplicitFlagsBeatPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PresetName = "archive-small"
	cfg.CRF = 18
	if err := cfg.ApplyDefaults(ExplicitFlags{CRF: true}); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}

	if cfg.CRF != 18 {
		t.Errorf("CRF = %d, want 18 (explicit flag wins)", cfg.CRF)
	}
	if cfg.VideoCodecID != "libx265" {
		t.Errorf("VideoCodecID = %q, want libx265 (still from preset)", cfg.VideoCodecID)
	}
}

func TestApplyDefaults_UnknownPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PresetName = "bogus"
	if err := cfg.ApplyDefaults(ExplicitFlags{}); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := DefaultConfig()
		cfg.Inputs = []string{"in.mp4"}
		if err := cfg.ApplyDefaults(ExplicitFlags{}); err != nil {
			t.Fatalf("ApplyDefaults: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown codec", func(c *Config) { c.VideoCodecID = "mpeg1" }, "unknown video codec"},
		{"unknown audio", func(c *Config) { c.AudioCodecID = "flac" }, "unknown audio codec"},
		{"unknown container", func(c *Config) { c.ContainerID = "avi" }, "unknown container"},
		{"crf too high", func(c *Config) { c.CRF = 52 }, "out of range"},
		{"crf negative", func(c *Config) { c.CRF = -2 }, "out of range"},
		{"bad preset", func(c *Config) { c.Preset = "warp9" }, "not valid"},
		{"bad bitrate", func(c *Config) { c.AudioBitrate = "fast" }, "invalid audio bitrate"},
		{"bad scale", func(c *Config) { c.ScaleHeight = 555 }, "unsupported scale height"},
		{"no inputs", func(c *Config) { c.Inputs = nil }, "no input files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate: got %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CheckOnlyNeedsNoInputs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.ApplyDefaults(ExplicitFlags{}); err != nil {
		t.Fatalf("ApplyDefaults: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with CheckOnly: %v", err)
	}
}

func TestNormalizeAudioBitrate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"256", "256k", false},
		{"256k", "256k", false},
		{"256K", "256k", false},
		{"256kbps", "256k", false},
		{" 128k ", "128k", false},
		{"", "", true},
		{"fast", "", true},
		{"-5", "", true},
		{"0", "", true},
	}
	for _, tt := range tests {
		got, err := normalizeAudioBitrate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("normalizeAudioBitrate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeAudioBitrate(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeAudioBitrate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	explicit, err := ParseFlags(&cfg, []string{
		"-c", "libx265", "-q", "20", "--scale", "1080", "a.mp4", "b.mkv",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	if cfg.VideoCodecID != "libx265" {
		t.Errorf("VideoCodecID = %q", cfg.VideoCodecID)
	}
	if cfg.CRF != 20 {
		t.Errorf("CRF = %d", cfg.CRF)
	}
	if cfg.ScaleHeight != 1080 {
		t.Errorf("ScaleHeight = %d", cfg.ScaleHeight)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[0] != "a.mp4" {
		t.Errorf("Inputs = %v", cfg.Inputs)
	}

	if !explicit.VideoCodec || !explicit.CRF {
		t.Errorf("explicit = %+v, want VideoCodec and CRF set", explicit)
	}
	if explicit.AudioCodec || explicit.Preset {
		t.Errorf("explicit = %+v, AudioCodec and Preset should be unset", explicit)
	}
}

func TestParseFlags_ColorModes(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := ParseFlags(&cfg, []string{"--no-color", "in.mp4"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}

	cfg = DefaultConfig()
	if _, err := ParseFlags(&cfg, []string{"--color", "in.mp4"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorAlways {
		t.Errorf("ColorMode = %q, want always", cfg.ColorMode)
	}
}

func TestParseFlags_BadFlag(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := ParseFlags(&cfg, []string{"--not-a-flag"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
