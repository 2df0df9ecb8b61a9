// Package check provides system diagnostics (--check mode) and
// pre-queue dependency validation (CheckDeps) for ffmpeg, ffprobe, and
// the selected encoders.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/wesen/encodeq/internal/codec"
	"github.com/wesen/encodeq/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder
// is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrVideoTestFailed = errors.New("video encoder test failed")
	ErrAudioTestFailed = errors.New("audio encoder test failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that
// check remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: ffmpeg/ffprobe
// availability, a test encode for every known video codec, and a test
// encode for every known audio codec. Informational only, it does not
// stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkFfmpeg(log)
	checkFfprobe(log)

	log.Info("Video encoders:")
	for _, vc := range codec.VideoCodecs {
		if testVideoEncoder(vc.Encoder) {
			log.Success("  %s (%s) works", vc.ID, vc.Encoder)
		} else if vc.Hardware {
			log.Warn("  %s (%s) unavailable (no supported GPU?)", vc.ID, vc.Encoder)
		} else {
			log.Error("  %s (%s) test encode failed", vc.ID, vc.Encoder)
		}
	}

	log.Info("Audio encoders:")
	for _, ac := range codec.AudioCodecs {
		if ac.Encoder == "" || ac.Encoder == "copy" {
			continue
		}
		if testAudioEncoder(ac.Encoder) {
			log.Success("  %s (%s) works", ac.ID, ac.Encoder)
		} else {
			log.Error("  %s (%s) test encode failed", ac.ID, ac.Encoder)
		}
	}
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return
	}
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	log.Success("ffmpeg: %s", firstLine(out))
}

// checkFfprobe verifies ffprobe is on PATH and logs its version string.
func checkFfprobe(log Logger) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Error("ffprobe not found")
		return
	}
	out, err := exec.Command("ffprobe", "-version").Output()
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return
	}
	log.Success("ffprobe: %s", firstLine(out))
}

// CheckDeps is the pre-queue validation: ffmpeg and ffprobe must be on
// PATH, and the configured video and audio encoders must pass a short
// test encode. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}

	if vc := codec.VideoByID(cfg.VideoCodecID); vc != nil {
		if !testVideoEncoder(vc.Encoder) {
			return ErrVideoTestFailed
		}
	}
	if ac := codec.AudioByID(cfg.AudioCodecID); ac != nil && ac.Encoder != "" && ac.Encoder != "copy" {
		if !testAudioEncoder(ac.Encoder) {
			return ErrAudioTestFailed
		}
	}
	return nil
}

// --- internal helpers ---

// testVideoEncoder runs a minimal synthetic-source encode through the
// given encoder with the output discarded.
func testVideoEncoder(encoder string) bool {
	return runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", encoder,
		"-f", "null", "-",
	)
}

// testAudioEncoder runs a minimal sine-source encode through the given
// encoder with the output discarded.
func testAudioEncoder(encoder string) bool {
	return runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", encoder,
		"-f", "null", "-",
	)
}

// firstLine returns the first line of command output, trimmed.
func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
