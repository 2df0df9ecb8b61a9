package queue

import (
	"testing"
	"time"

	"github.com/wesen/encodeq/internal/job"
	"github.com/wesen/encodeq/internal/probe"
)

func settledJob(name string, status job.Status, inSize, outSize int64, elapsed time.Duration) *job.Job {
	j := job.New("/in/"+name, &probe.Result{Duration: 10, Size: inSize}, job.Settings{
		VideoCodecID: "libx264", AudioCodecID: "aac", ContainerID: "mp4",
	})
	j.Status = status
	j.OutputSize = outSize
	j.Elapsed = elapsed
	return j
}

func TestComputeResult_Aggregates(t *testing.T) {
	jobs := []*job.Job{
		settledJob("a.mp4", job.StatusDone, 1000, 500, 2*time.Second),
		settledJob("b.mp4", job.StatusDone, 1000, 500, 3*time.Second),
	}

	res := ComputeResult(jobs)

	if res.TotalInput != 2000 || res.TotalOutput != 1000 {
		t.Errorf("totals = %d -> %d, want 2000 -> 1000", res.TotalInput, res.TotalOutput)
	}
	if res.TotalSaved != "50.0%" {
		t.Errorf("TotalSaved = %q, want 50.0%%", res.TotalSaved)
	}
	if res.TotalElapsed != 5*time.Second {
		t.Errorf("TotalElapsed = %v, want 5s", res.TotalElapsed)
	}
	if res.Done != 2 {
		t.Errorf("Done = %d, want 2", res.Done)
	}
	if res.Rows[0].Saved != "50.0%" {
		t.Errorf("row saved = %q", res.Rows[0].Saved)
	}
}

func TestComputeResult_MixedOutcomes(t *testing.T) {
	jobs := []*job.Job{
		settledJob("done.mp4", job.StatusDone, 1000, 800, time.Second),
		settledJob("failed.mp4", job.StatusFailed, 2000, 0, time.Second),
		settledJob("cancelled.mp4", job.StatusCancelled, 3000, 0, time.Second),
		settledJob("pending.mp4", job.StatusPending, 4000, 0, 0),
	}

	res := ComputeResult(jobs)

	if res.Done != 1 || res.Failed != 1 || res.Cancelled != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", res.Done, res.Failed, res.Cancelled)
	}
	if len(res.Rows) != 4 {
		t.Fatalf("rows = %d, want 4 (pending included)", len(res.Rows))
	}

	// No output: percent saved is unknown, not 100%.
	if res.Rows[1].Saved == "100.0%" {
		t.Errorf("failed row saved = %q", res.Rows[1].Saved)
	}
	if res.Rows[0].Icon != "✅" || res.Rows[1].Icon != "❌" || res.Rows[2].Icon != "⊘" {
		t.Errorf("icons = %q %q %q", res.Rows[0].Icon, res.Rows[1].Icon, res.Rows[2].Icon)
	}
	if res.TotalInput != 10000 {
		t.Errorf("TotalInput = %d", res.TotalInput)
	}
}

func TestComputeResult_Empty(t *testing.T) {
	res := ComputeResult(nil)
	if len(res.Rows) != 0 || res.Done != 0 {
		t.Errorf("empty result = %+v", res)
	}
}
