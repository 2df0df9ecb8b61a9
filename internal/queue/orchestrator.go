// Package queue drives a batch of encode jobs sequentially: one
// external process at a time, two concurrent stream readers per
// process, and a results summary once the last job settles.
//
// All mutable run state (active index, paused flag, process handle)
// is owned by the Orchestrator. The pause/cancel controls only signal
// the OS process and flip orchestrator-owned flags; they never touch
// the process handle's streams, so "one active job at a time" is the
// only locking discipline needed beyond the state mutex.
package queue

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wesen/encodeq/internal/encoder"
	"github.com/wesen/encodeq/internal/job"
	"github.com/wesen/encodeq/internal/progress"
)

// Sentinel errors for refused Run calls. Both are user-visible
// warnings, not crashes.
var (
	ErrRunActive  = errors.New("a batch run is already active")
	ErrEmptyBatch = errors.New("batch is empty")
)

// Logger is the minimal logging interface the orchestrator needs.
// Defined here (rather than importing the logging package) so the
// queue is testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Render(string, ...interface{})
	Debug(string, ...interface{})
}

// Orchestrator runs batches. One instance supports one run at a time;
// the control methods (TogglePause, Cancel) may be called from other
// goroutines while Run is active.
type Orchestrator struct {
	log      Logger
	notifier Notifier

	// buildCommand produces the argument vector for a job. Tests
	// replace it to run without a real encoder.
	buildCommand func(*job.Job) []string

	mu        sync.Mutex
	jobs      []*job.Job
	running   bool
	paused    bool
	cancelled bool
	current   int
	proc      *encoder.Process
	jobStart  time.Time
}

// New creates an orchestrator. A nil notifier discards notifications.
func New(log Logger, n Notifier) *Orchestrator {
	if n == nil {
		n = NopNotifier{}
	}
	return &Orchestrator{
		log:          log,
		notifier:     n,
		buildCommand: defaultCommand,
		current:      -1,
	}
}

// defaultCommand is the job's own ffmpeg command with the progress
// reporting flags injected.
func defaultCommand(j *job.Job) []string {
	return injectProgressFlags(j.BuildCommand())
}

// injectProgressFlags inserts "-progress pipe:1 -stats_period 0.5"
// before the output section (the -y flag), routing the structured
// progress feed to stdout where the controller captures it separately
// from the stderr diagnostics.
func injectProgressFlags(argv []string) []string {
	for i, a := range argv {
		if a == "-y" {
			out := make([]string, 0, len(argv)+4)
			out = append(out, argv[:i]...)
			out = append(out, "-progress", "pipe:1", "-stats_period", "0.5")
			out = append(out, argv[i:]...)
			return out
		}
	}
	return append(argv, "-progress", "pipe:1", "-stats_period", "0.5")
}

// Run executes every job in order and returns the batch summary. It
// refuses when a run is already active or the batch is empty. A
// cancelled context behaves like Cancel: the active job's process is
// terminated and remaining jobs stay PENDING.
func (o *Orchestrator) Run(ctx context.Context, jobs []*job.Job) (*BatchResult, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, ErrRunActive
	}
	if len(jobs) == 0 {
		o.mu.Unlock()
		return nil, ErrEmptyBatch
	}
	o.running = true
	o.paused = false
	o.cancelled = false
	o.jobs = jobs
	o.current = -1
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.proc = nil
		o.current = -1
		o.mu.Unlock()
	}()

	for i, j := range jobs {
		// Batch-level abort: once a cancel is observed, remaining
		// jobs are not started and stay PENDING.
		if o.Cancelled() || ctx.Err() != nil {
			break
		}

		o.startJob(i, j)
		exitErr := o.runJob(ctx, i, j)
		o.settleJob(i, j, exitErr)
	}

	res := ComputeResult(jobs)
	o.notifier.BatchDone(res)
	return res, nil
}

// startJob moves j into the active slot and resets its display state.
func (o *Orchestrator) startJob(i int, j *job.Job) {
	o.mu.Lock()
	o.current = i
	o.jobStart = time.Now()
	j.Status = job.StatusEncoding
	j.Progress = 0
	o.mu.Unlock()

	o.log.Info("(%d/%d) Encoding: %s", i+1, len(o.jobs), j.Name())
	o.notify(i, j, "")
}

// runJob starts the process for j and drives both output streams to
// completion. The returned error is the process exit error (nil for
// status 0), or the spawn error if the process never started.
func (o *Orchestrator) runJob(ctx context.Context, i int, j *job.Job) error {
	out := j.ResolveOutputPath()
	argv := o.buildCommand(j)
	o.log.Debug("[%s] -> %s", j.ID, out)
	o.log.Debug("[%s] %s", j.ID, strings.Join(argv, " "))

	proc, err := encoder.Start(argv)
	if err != nil {
		// Spawn failure is scoped to this job: the diagnostic goes to
		// the log sink and the caller marks the job FAILED.
		o.log.Error("[%s] %v", j.ID, err)
		return err
	}

	o.mu.Lock()
	o.proc = proc
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.proc = nil
		o.mu.Unlock()
	}()

	// Propagate context cancellation (e.g. SIGINT) to the process.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			o.Cancel()
		case <-watchDone:
		}
	}()

	parser := progress.NewParser(j.Duration())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		o.readDiagnostics(proc, j)
	}()
	go func() {
		defer wg.Done()
		o.readProgress(proc, parser, i, j)
	}()

	// Both streams must be drained before waiting, or the child can
	// block on a full pipe buffer.
	wg.Wait()
	return proc.Wait()
}

// settleJob records the terminal status and elapsed time for j.
func (o *Orchestrator) settleJob(i int, j *job.Job, exitErr error) {
	o.mu.Lock()
	j.Elapsed = time.Since(o.jobStart)
	cancelled := o.cancelled
	o.paused = false

	switch {
	case exitErr == nil:
		j.Status = job.StatusDone
		j.Progress = 100
		if fi, err := os.Stat(j.OutputPath()); err == nil {
			j.OutputSize = fi.Size()
		}
	case cancelled:
		j.Status = job.StatusCancelled
	default:
		j.Status = job.StatusFailed
	}
	o.mu.Unlock()

	switch j.Status {
	case job.StatusDone:
		o.log.Success("[%s] done in %ds", j.ID, int(j.Elapsed.Seconds()))
	case job.StatusCancelled:
		o.log.Warn("[%s] cancelled", j.ID)
	default:
		o.log.Error("[%s] failed: %v", j.ID, exitErr)
	}
	o.notify(i, j, "")
}

// readProgress feeds the structured progress stream through the parser
// and applies each sample to the job. The cancellation flag is checked
// before processing each line; once observed, pending reads are
// abandoned (Cancel has already signalled the process).
func (o *Orchestrator) readProgress(proc *encoder.Process, parser *progress.Parser, i int, j *job.Job) {
	sc := bufio.NewScanner(proc.Progress)
	for sc.Scan() {
		if o.Cancelled() {
			return
		}
		sample := parser.Feed(sc.Text())
		if sample == nil {
			continue
		}
		o.applySample(i, j, sample)
	}
	if err := sc.Err(); err != nil && !o.Cancelled() {
		// Mid-stream read failure: terminate this job's process; the
		// nonzero exit settles the job as FAILED.
		o.log.Error("[%s] progress stream: %v", j.ID, err)
		proc.Cancel(o.Paused())
	}
}

// readDiagnostics passes the free-text stream through to the log sink
// line by line, unparsed.
func (o *Orchestrator) readDiagnostics(proc *encoder.Process, j *job.Job) {
	sc := bufio.NewScanner(proc.Diag)
	for sc.Scan() {
		if o.Cancelled() {
			return
		}
		if text := sc.Text(); text != "" {
			o.log.Render("%s", text)
		}
	}
	if err := sc.Err(); err != nil && !o.Cancelled() {
		o.log.Debug("[%s] diagnostic stream: %v", j.ID, err)
	}
}

// applySample updates the job's progress fraction and emits a stats
// view. Fractions derive from the encoder's out-time, which is
// monotonic, so progress never moves backwards within a run.
func (o *Orchestrator) applySample(i int, j *job.Job, s *progress.Sample) {
	o.mu.Lock()
	j.Progress = s.Fraction
	elapsed := time.Since(o.jobStart)
	paused := o.paused
	o.mu.Unlock()

	o.notify(i, j, formatStats(s, elapsed, paused))
}

// notify snapshots j under the lock and hands the view to the notifier.
func (o *Orchestrator) notify(i int, j *job.Job, stats string) {
	o.mu.Lock()
	v := JobView{
		Index:    i,
		Total:    len(o.jobs),
		JobID:    j.ID,
		Name:     j.Name(),
		Status:   j.Status,
		Progress: j.Progress,
		Stats:    stats,
	}
	o.mu.Unlock()
	o.notifier.JobUpdate(v)
}

// TogglePause suspends or resumes the active job's process and returns
// the new paused state. The flag here is the source of truth: signal
// delivery is fire-and-forget and OS stop state cannot be queried
// portably. No-op (returns false) when nothing is running.
func (o *Orchestrator) TogglePause() bool {
	o.mu.Lock()
	if !o.running || o.proc == nil || o.cancelled {
		o.mu.Unlock()
		return false
	}
	o.paused = !o.paused
	paused := o.paused
	proc := o.proc
	i := o.current
	j := o.jobs[i]
	if paused {
		j.Status = job.StatusPaused
	} else {
		j.Status = job.StatusEncoding
	}
	o.mu.Unlock()

	if paused {
		proc.Pause()
		o.log.Warn("Encoding paused")
	} else {
		proc.Resume()
		o.log.Info("Encoding resumed")
	}
	o.notify(i, j, "")
	return paused
}

// Cancel aborts the active job and stops the batch: the process is
// terminated (resumed first if paused, since terminating a stopped
// process is unreliable) and remaining jobs stay PENDING. Idempotent.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	if o.cancelled {
		o.mu.Unlock()
		return
	}
	o.cancelled = true
	proc := o.proc
	paused := o.paused
	o.paused = false
	o.mu.Unlock()

	if proc != nil {
		proc.Cancel(paused)
	}
}

// Running reports whether a batch run is active.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Paused reports the orchestrator-owned paused flag.
func (o *Orchestrator) Paused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paused
}

// Cancelled reports whether the current run has been cancelled.
func (o *Orchestrator) Cancelled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancelled
}
