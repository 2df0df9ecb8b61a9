package progress

import (
	"strings"
	"testing"
)

// feedBlock pushes a block of lines and returns the sample emitted by
// the terminator line (nil when the block never terminated).
func feedBlock(p *Parser, lines ...string) *Sample {
	var last *Sample
	for _, line := range lines {
		if s := p.Feed(line); s != nil {
			last = s
		}
	}
	return last
}

func TestFeed_CompleteBlock(t *testing.T) {
	p := NewParser(10) // 10 second source

	s := feedBlock(p,
		"frame=10",
		"fps=25.00",
		"bitrate= 812.3kbits/s",
		"total_size=1048576",
		"out_time_ms=5000000",
		"speed=1.0x",
		"progress=continue",
	)
	if s == nil {
		t.Fatal("no sample emitted")
	}

	if s.OutSeconds != 5 {
		t.Errorf("OutSeconds = %v, want 5 (out_time_ms is microseconds)", s.OutSeconds)
	}
	if s.Fraction != 50 {
		t.Errorf("Fraction = %v, want 50", s.Fraction)
	}
	if s.Frame != "10" || s.Speed != "1.0x" || s.FPS != "25.00" {
		t.Errorf("display fields = %q %q %q", s.Frame, s.Speed, s.FPS)
	}
	if s.Bitrate != "812.3kbits/s" {
		t.Errorf("Bitrate = %q", s.Bitrate)
	}
	if s.TotalSize != 1048576 {
		t.Errorf("TotalSize = %d", s.TotalSize)
	}
	if s.End {
		t.Error("End should be false for progress=continue")
	}
}

func TestFeed_NoSampleMidBlock(t *testing.T) {
	p := NewParser(10)
	if s := p.Feed("frame=10"); s != nil {
		t.Errorf("mid-block line emitted a sample: %+v", s)
	}
	if s := p.Feed("out_time_ms=1000000"); s != nil {
		t.Errorf("mid-block line emitted a sample: %+v", s)
	}
}

func TestFeed_EndBlock(t *testing.T) {
	p := NewParser(10)
	s := feedBlock(p, "out_time_ms=10000000", "progress=end")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if !s.End {
		t.Error("End should be true for progress=end")
	}
	if s.Fraction != 100 {
		t.Errorf("Fraction = %v, want 100", s.Fraction)
	}
}

func TestFeed_OutTimeUsFallback(t *testing.T) {
	p := NewParser(10)
	s := feedBlock(p, "out_time_us=2500000", "progress=continue")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if s.OutSeconds != 2.5 {
		t.Errorf("OutSeconds = %v, want 2.5", s.OutSeconds)
	}
}

func TestFeed_RecordResetsBetweenBlocks(t *testing.T) {
	p := NewParser(10)
	feedBlock(p, "frame=10", "total_size=4096", "progress=continue")

	s := feedBlock(p, "out_time_ms=1000000", "progress=continue")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	// Fields from the previous block must not leak.
	if s.Frame != Unknown {
		t.Errorf("Frame = %q, want %q", s.Frame, Unknown)
	}
	if s.TotalSize != -1 {
		t.Errorf("TotalSize = %d, want -1", s.TotalSize)
	}
}

func TestFeed_UnknownFields(t *testing.T) {
	p := NewParser(10)
	s := feedBlock(p,
		"fps=N/A",
		"speed=",
		"out_time_ms=garbage",
		"progress=continue",
	)
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if s.Speed != Unknown {
		t.Errorf("Speed = %q, want %q", s.Speed, Unknown)
	}
	if s.OutSeconds != 0 {
		t.Errorf("OutSeconds = %v, want 0 for unparseable out-time", s.OutSeconds)
	}
	if s.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0", s.Fraction)
	}
	// "N/A" passes through as-is; it is already the unknown sentinel.
	if s.FPS != "N/A" {
		t.Errorf("FPS = %q", s.FPS)
	}
}

func TestFeed_FractionCappedAt100(t *testing.T) {
	p := NewParser(10)
	s := feedBlock(p, "out_time_ms=15000000", "progress=continue")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if s.Fraction != 100 {
		t.Errorf("Fraction = %v, want capped at 100", s.Fraction)
	}
	if s.OutSeconds != 15 {
		t.Errorf("OutSeconds = %v, want 15 (uncapped)", s.OutSeconds)
	}
}

func TestFeed_ZeroDurationDisablesFraction(t *testing.T) {
	p := NewParser(0)
	s := feedBlock(p, "out_time_ms=5000000", "progress=continue")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if s.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0 when duration unknown", s.Fraction)
	}
}

func TestFeed_MonotonicOverStream(t *testing.T) {
	p := NewParser(20)

	stream := strings.Join([]string{
		"frame=1", "out_time_ms=1000000", "progress=continue",
		"frame=2", "out_time_ms=4000000", "progress=continue",
		"frame=3", "out_time_ms=9000000", "progress=continue",
		"frame=4", "out_time_ms=20000000", "progress=end",
	}, "\n")

	var fractions []float64
	for _, line := range strings.Split(stream, "\n") {
		if s := p.Feed(line); s != nil {
			fractions = append(fractions, s.Fraction)
		}
	}

	if len(fractions) != 4 {
		t.Fatalf("got %d samples, want 4", len(fractions))
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("fraction decreased: %v -> %v", fractions[i-1], fractions[i])
		}
	}
	if fractions[len(fractions)-1] != 100 {
		t.Errorf("final fraction = %v, want 100", fractions[len(fractions)-1])
	}
}

func TestFeed_WhitespaceTolerant(t *testing.T) {
	p := NewParser(10)
	s := feedBlock(p, "  frame = 42  ", " progress=continue ")
	if s == nil {
		t.Fatal("no sample emitted")
	}
	if s.Frame != "42" {
		t.Errorf("Frame = %q, want 42", s.Frame)
	}
}
