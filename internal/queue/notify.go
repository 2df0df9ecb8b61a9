package queue

import "github.com/wesen/encodeq/internal/job"

// JobView is a read-only snapshot of one job's display state. The
// orchestrator emits views on every state change and progress sample;
// the presentation layer never touches the jobs themselves.
type JobView struct {
	Index    int // position in the batch, 0-based
	Total    int // batch size
	JobID    string
	Name     string
	Status   job.Status
	Progress float64 // [0,100]
	Stats    string  // formatted live stats block, empty outside ENCODING
}

// Notifier receives state-change notifications from the orchestrator.
// Implementations must be fast or hand off; calls happen on the
// orchestration worker and the progress reader.
type Notifier interface {
	// JobUpdate is called when a job's status or progress changes.
	JobUpdate(v JobView)
	// BatchDone is called once, after the last job settles.
	BatchDone(r *BatchResult)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) JobUpdate(JobView)      {}
func (NopNotifier) BatchDone(*BatchResult) {}
