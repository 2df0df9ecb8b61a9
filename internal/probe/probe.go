// Package probe wraps ffprobe to extract duration, size, and stream
// metadata for candidate input files. One JSON call per file, with a
// bounded timeout.
//
// Probe never returns a Go error: every failure mode (missing file,
// missing tool, timeout, nonzero exit, bad JSON) is captured as a
// distinct message in Result.Err so the caller can report it per file
// and skip queueing. This mirrors how the batch front-end consumes it.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Timeout bounds a single ffprobe invocation.
const Timeout = 30 * time.Second

// VideoStream holds the parsed properties of the first video stream.
type VideoStream struct {
	Codec     string
	Width     int
	Height    int
	FPS       float64
	PixFmt    string
	BitRate   int64 // bits/sec
}

// AudioStream holds the parsed properties of the first audio stream.
type AudioStream struct {
	Codec      string
	SampleRate int
	Channels   int
	BitRate    int64 // bits/sec
}

// Result is the complete probe outcome for one media file. When Err is
// non-empty the other fields are unreliable and the file must not be
// queued.
type Result struct {
	Path       string
	Duration   float64 // seconds
	Size       int64   // bytes
	FormatName string
	Video      *VideoStream
	Audio      *AudioStream
	Err        string
}

// Resolution returns "WxH" for the video stream, or "unknown".
func (r *Result) Resolution() string {
	if r.Video == nil || r.Video.Width <= 0 || r.Video.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", r.Video.Width, r.Video.Height)
}

// Probe runs ffprobe against path and returns the parsed metadata.
func Probe(ctx context.Context, path string) *Result {
	res := &Result{Path: path}

	if _, err := os.Stat(path); err != nil {
		res.Err = fmt.Sprintf("file not found: %s", path)
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			res.Err = "ffprobe timed out"
		case errors.Is(err, exec.ErrNotFound):
			res.Err = "ffprobe not found (is ffmpeg installed?)"
		default:
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				res.Err = fmt.Sprintf("ffprobe failed (exit %d)", exitErr.ExitCode())
			} else {
				res.Err = fmt.Sprintf("ffprobe failed: %v", err)
			}
		}
		return res
	}

	parseJSON(out, res)
	return res
}

// ParseJSON converts raw ffprobe JSON output into a Result. Exported
// for testing without a real ffprobe binary.
func ParseJSON(data []byte) *Result {
	res := &Result{}
	parseJSON(data, res)
	return res
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	PixFmt       string `json:"pix_fmt"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	BitRate      string `json:"bit_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Channels     int    `json:"channels"`
	SampleRate   string `json:"sample_rate"`
}

func parseJSON(data []byte, res *Result) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		res.Err = "failed to parse ffprobe output"
		return
	}

	res.Duration = parseFloat(raw.Format.Duration)
	res.Size = parseInt64(raw.Format.Size)
	res.FormatName = raw.Format.FormatName
	if res.FormatName == "" {
		res.FormatName = "unknown"
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if res.Video == nil {
				res.Video = &VideoStream{
					Codec:   orUnknown(s.CodecName),
					Width:   s.Width,
					Height:  s.Height,
					FPS:     parseFPS(s),
					PixFmt:  orUnknown(s.PixFmt),
					BitRate: parseInt64(s.BitRate),
				}
			}
		case "audio":
			if res.Audio == nil {
				res.Audio = &AudioStream{
					Codec:      orUnknown(s.CodecName),
					SampleRate: parseInt(s.SampleRate),
					Channels:   s.Channels,
					BitRate:    parseInt64(s.BitRate),
				}
			}
		}
	}
}

// parseFPS parses the frame rate fraction (e.g. "24000/1001"), trying
// r_frame_rate first, then avg_frame_rate.
func parseFPS(s *ffprobeStream) float64 {
	for _, raw := range []string{s.RFrameRate, s.AvgFrameRate} {
		num, den, ok := strings.Cut(raw, "/")
		if !ok {
			continue
		}
		n, err1 := strconv.Atoi(num)
		d, err2 := strconv.Atoi(den)
		if err1 != nil || err2 != nil || d <= 0 {
			continue
		}
		return float64(n) / float64(d)
	}
	return 0
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
