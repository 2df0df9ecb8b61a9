package codec

import "testing"

func TestVideoByID(t *testing.T) {
	for _, vc := range VideoCodecs {
		got := VideoByID(vc.ID)
		if got == nil || got.ID != vc.ID {
			t.Errorf("VideoByID(%q) = %v", vc.ID, got)
		}
	}
	if VideoByID("mpeg1") != nil {
		t.Error("VideoByID(mpeg1) should be nil")
	}
}

func TestAudioByID(t *testing.T) {
	for _, ac := range AudioCodecs {
		got := AudioByID(ac.ID)
		if got == nil || got.ID != ac.ID {
			t.Errorf("AudioByID(%q) = %v", ac.ID, got)
		}
	}
	if AudioByID("flac") != nil {
		t.Error("AudioByID(flac) should be nil")
	}
}

func TestDefaultContainerCoversAllCodecs(t *testing.T) {
	for _, vc := range VideoCodecs {
		id, ok := DefaultContainer[vc.ID]
		if !ok {
			t.Errorf("no default container for %s", vc.ID)
			continue
		}
		if ContainerByID(id) == nil {
			t.Errorf("default container %q for %s is not in the table", id, vc.ID)
		}
	}
}

func TestPresetsReferenceValidTables(t *testing.T) {
	for _, p := range Presets {
		vc := VideoByID(p.VideoCodecID)
		if vc == nil {
			t.Errorf("preset %s: unknown video codec %q", p.Name, p.VideoCodecID)
			continue
		}
		if AudioByID(p.AudioCodecID) == nil {
			t.Errorf("preset %s: unknown audio codec %q", p.Name, p.AudioCodecID)
		}
		if ContainerByID(p.ContainerID) == nil {
			t.Errorf("preset %s: unknown container %q", p.Name, p.ContainerID)
		}
		if p.CRF < vc.CRFMin || p.CRF > vc.CRFMax {
			t.Errorf("preset %s: CRF %d out of range for %s", p.Name, p.CRF, vc.ID)
		}
		if !vc.SupportsPreset(p.Preset) {
			t.Errorf("preset %s: speed preset %q not valid for %s", p.Name, p.Preset, vc.ID)
		}
	}
}

func TestSupportsPreset(t *testing.T) {
	x264 := VideoByID("libx264")
	if !x264.SupportsPreset("medium") {
		t.Error("libx264 should support medium")
	}
	if x264.SupportsPreset("p4") {
		t.Error("libx264 should not support p4")
	}
	if !x264.SupportsPreset("") {
		t.Error("empty preset is always valid")
	}

	// libvpx-vp9 has no preset scale; only the empty preset is valid.
	vp9 := VideoByID("libvpx-vp9")
	if vp9.SupportsPreset("medium") {
		t.Error("libvpx-vp9 should reject named presets")
	}
	if !vp9.SupportsPreset("") {
		t.Error("libvpx-vp9 should accept the empty preset")
	}
}

func TestHardwareFlagMatchesNvenc(t *testing.T) {
	for _, vc := range VideoCodecs {
		isNvenc := vc.ID == "h264_nvenc" || vc.ID == "hevc_nvenc"
		if vc.Hardware != isNvenc {
			t.Errorf("%s: Hardware = %v", vc.ID, vc.Hardware)
		}
	}
}
