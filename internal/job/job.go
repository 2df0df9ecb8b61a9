// Package job defines the unit of work for the encode queue: one input
// file, its immutable encode settings, its resolved output path, and
// its runtime state. It also builds the ffmpeg argument vector for the
// job, so the orchestrator never assembles encoder flags itself.
package job

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wesen/encodeq/internal/probe"
)

// Settings is the immutable encode configuration captured at job
// creation. Fields reference the codec tables by ID.
type Settings struct {
	VideoCodecID string
	AudioCodecID string
	ContainerID  string
	CRF          int
	Preset       string
	AudioBitrate string
	ScaleHeight  int    // 0 = keep source resolution
	OutputDir    string // empty = same directory as input
}

// Job is one file's encode configuration plus its runtime state. The
// identity (Input) and Settings never change after creation; the
// runtime fields are owned exclusively by the orchestration worker
// while the job is active and are read-only once it is terminal.
type Job struct {
	ID       string // short identifier for log correlation
	Input    string
	Probe    *probe.Result
	Settings Settings

	// Runtime state.
	Status     Status
	Progress   float64 // [0,100]
	Elapsed    time.Duration
	OutputSize int64

	// resolved is the frozen output path; empty until the first
	// ResolveOutputPath call.
	resolved string
}

// New creates a pending job for input with the given probe result and
// settings.
func New(input string, pr *probe.Result, s Settings) *Job {
	return &Job{
		ID:       uuid.NewString()[:8],
		Input:    input,
		Probe:    pr,
		Settings: s,
		Status:   StatusPending,
	}
}

// Name returns the input's base name for display.
func (j *Job) Name() string { return filepath.Base(j.Input) }

// InputSize returns the probed input size in bytes, or 0.
func (j *Job) InputSize() int64 {
	if j.Probe == nil {
		return 0
	}
	return j.Probe.Size
}

// Duration returns the probed input duration in seconds, or 0.
func (j *Job) Duration() float64 {
	if j.Probe == nil {
		return 0
	}
	return j.Probe.Duration
}
