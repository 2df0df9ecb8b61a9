// Package progress parses the line-oriented key=value feed that ffmpeg
// emits on its -progress channel into normalized samples.
//
// The feed is a sequence of blocks; each block is a run of key=value
// lines terminated by a "progress=continue" or "progress=end" sentinel.
// The parser accumulates pairs into a working record and emits one
// Sample per terminator.
package progress

import (
	"strconv"
	"strings"
)

// Unknown is the sentinel for display values that could not be parsed
// from the stream. Individual bad fields never invalidate a sample.
const Unknown = "N/A"

// Sample is a normalized snapshot of encoder progress at one
// checkpoint. It is derived per block and not persisted.
type Sample struct {
	// OutSeconds is how far into the source the encoder's output has
	// reached, in seconds.
	OutSeconds float64

	// Fraction is percent complete in [0,100], computed against the
	// probed total duration (0 when the duration is unknown).
	Fraction float64

	// Raw display stats from the stream; Unknown when absent or
	// unparseable.
	Speed   string
	FPS     string
	Frame   string
	Bitrate string

	// TotalSize is the current output size in bytes, -1 when unknown.
	TotalSize int64

	// End marks the stream's final block (progress=end).
	End bool
}

// Parser accumulates one block of key=value lines at a time. Create one
// per job run with the input's probed duration.
type Parser struct {
	duration float64 // total source duration in seconds
	record   map[string]string
}

// NewParser returns a parser that computes completion fractions against
// totalDuration (seconds). A zero or negative duration disables the
// fraction (always 0).
func NewParser(totalDuration float64) *Parser {
	return &Parser{
		duration: totalDuration,
		record:   make(map[string]string),
	}
}

// Feed consumes one line from the progress channel. It returns a Sample
// when the line terminates a block, nil otherwise.
func (p *Parser) Feed(line string) *Sample {
	text := strings.TrimSpace(line)

	if key, val, ok := strings.Cut(text, "="); ok {
		p.record[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}

	if text != "progress=continue" && text != "progress=end" {
		return nil
	}

	s := p.build()
	s.End = text == "progress=end"
	p.record = make(map[string]string)
	return s
}

// build converts the working record into a Sample.
func (p *Parser) build() *Sample {
	s := &Sample{
		Speed:     stringField(p.record, "speed"),
		FPS:       stringField(p.record, "fps"),
		Frame:     stringField(p.record, "frame"),
		Bitrate:   stringField(p.record, "bitrate"),
		TotalSize: -1,
	}

	// ffmpeg reports the out-time under out_time_ms (older builds:
	// out_time_us). Despite the _ms name, both fields are microsecond
	// counts; treat the value as microseconds.
	outTime, ok := p.record["out_time_ms"]
	if !ok {
		outTime = p.record["out_time_us"]
	}
	if us, err := strconv.ParseInt(outTime, 10, 64); err == nil {
		s.OutSeconds = float64(us) / 1e6
	}

	if p.duration > 0 {
		s.Fraction = s.OutSeconds / p.duration * 100
		if s.Fraction > 100 {
			s.Fraction = 100
		}
	}

	if n, err := strconv.ParseInt(p.record["total_size"], 10, 64); err == nil {
		s.TotalSize = n
	}

	return s
}

func stringField(record map[string]string, key string) string {
	if v := record[key]; v != "" {
		return v
	}
	return Unknown
}
