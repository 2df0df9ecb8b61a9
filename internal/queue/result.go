package queue

import (
	"time"

	"github.com/wesen/encodeq/internal/display"
	"github.com/wesen/encodeq/internal/job"
)

// Row is one job's line in the batch results table.
type Row struct {
	Icon       string
	Name       string
	InputSize  int64
	OutputSize int64 // 0 when no output was produced
	Saved      string
	Elapsed    time.Duration
}

// BatchResult aggregates the outcome of one batch run.
type BatchResult struct {
	Rows []Row

	TotalInput   int64
	TotalOutput  int64
	TotalElapsed time.Duration
	TotalSaved   string

	Done      int
	Failed    int
	Cancelled int
}

// ComputeResult builds the batch summary from settled jobs. Percent
// saved is (1 - output/input) * 100, shown only when both sizes are
// known and positive.
func ComputeResult(jobs []*job.Job) *BatchResult {
	r := &BatchResult{}

	for _, j := range jobs {
		inSize := j.InputSize()
		outSize := j.OutputSize

		r.Rows = append(r.Rows, Row{
			Icon:       j.Status.Icon(),
			Name:       j.Name(),
			InputSize:  inSize,
			OutputSize: outSize,
			Saved:      display.FormatPercentSaved(inSize, outSize),
			Elapsed:    j.Elapsed,
		})

		r.TotalInput += inSize
		r.TotalOutput += outSize
		r.TotalElapsed += j.Elapsed

		switch j.Status {
		case job.StatusDone:
			r.Done++
		case job.StatusFailed:
			r.Failed++
		case job.StatusCancelled:
			r.Cancelled++
		}
	}

	r.TotalSaved = display.FormatPercentSaved(r.TotalInput, r.TotalOutput)
	return r
}
