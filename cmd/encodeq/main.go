// Command encodeq is the entrypoint for the batch video encoder CLI.
// It parses flags, probes the input files, and runs them through the
// sequential encode queue. Ctrl-C cancels the batch; on Unix, SIGUSR1
// toggles pause on the active job.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/wesen/encodeq/internal/check"
	"github.com/wesen/encodeq/internal/config"
	"github.com/wesen/encodeq/internal/display"
	"github.com/wesen/encodeq/internal/job"
	"github.com/wesen/encodeq/internal/logging"
	"github.com/wesen/encodeq/internal/probe"
	"github.com/wesen/encodeq/internal/queue"
	"github.com/wesen/encodeq/internal/term"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Load config from defaults, CLI flags, and the codec tables;
	// exit on parse or validation error.
	cfg := config.DefaultConfig()
	explicit, err := config.ParseFlags(&cfg, args)
	if err != nil {
		return 2
	}
	if err := cfg.ApplyDefaults(explicit); err != nil {
		fmt.Fprintf(os.Stderr, "encodeq: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "encodeq: %v\n", err)
		return 2
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encodeq: %v\n", err)
		return 1
	}
	defer log.Close()

	// 2. If the user asked for system diagnostics, run them and exit.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory %s: %v", cfg.OutputDir, err)
			return 1
		}
	}

	// 3. Fail fast when ffmpeg, ffprobe, or the selected encoders are
	// unusable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// 4. Probe every input; unreadable files are reported and skipped,
	// never queued.
	jobs := buildJobs(&cfg, log)
	if len(jobs) == 0 {
		log.Error("No encodable inputs")
		return 1
	}

	// 5. Run the batch. Ctrl-C (and SIGTERM) cancel the active job and
	// leave the rest of the batch pending.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := queue.New(log, &progressNotifier{})
	stopPause := watchPause(orch)
	defer stopPause()

	res, err := orch.Run(ctx, jobs)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	renderResults(log, res)
	if res.Failed > 0 {
		return 1
	}
	return 0
}

// buildJobs probes each input and creates a pending job per encodable
// file. Files that fail the probe or carry no video stream are skipped
// with a warning.
func buildJobs(cfg *config.Config, log *logging.Logger) []*job.Job {
	settings := job.Settings{
		VideoCodecID: cfg.VideoCodecID,
		AudioCodecID: cfg.AudioCodecID,
		ContainerID:  cfg.ContainerID,
		CRF:          cfg.CRF,
		Preset:       cfg.Preset,
		AudioBitrate: cfg.AudioBitrate,
		ScaleHeight:  cfg.ScaleHeight,
		OutputDir:    cfg.OutputDir,
	}

	var jobs []*job.Job
	for _, input := range cfg.Inputs {
		pr := probe.Probe(context.Background(), input)
		if pr.Err != "" {
			log.Warn("Skipping %s: %s", input, pr.Err)
			continue
		}
		if pr.Video == nil {
			log.Warn("Skipping %s: no video stream", input)
			continue
		}

		j := job.New(input, pr, settings)
		log.Info("Queued %s [%s]", j.Name(), j.ID)
		log.Debug("[%s] %s", j.ID, pr.Summary())
		jobs = append(jobs, j)
	}
	return jobs
}

// renderResults prints the per-job results table and the batch totals.
func renderResults(log *logging.Logger, res *queue.BatchResult) {
	log.Info("")
	log.Info("=== Results ===")
	for _, row := range res.Rows {
		outSize := "-"
		if row.OutputSize > 0 {
			outSize = display.FormatSize(row.OutputSize)
		}
		log.Info("%s %-40s %10s -> %-10s saved %-7s in %s",
			row.Icon, row.Name,
			display.FormatSize(row.InputSize), outSize,
			row.Saved,
			display.FormatDuration(row.Elapsed.Seconds()),
		)
	}
	log.Info("Total: %s -> %s (saved %s) in %s",
		display.FormatSize(res.TotalInput),
		display.FormatSize(res.TotalOutput),
		res.TotalSaved,
		display.FormatDuration(res.TotalElapsed.Seconds()),
	)

	summary := fmt.Sprintf("%d done, %d failed, %d cancelled",
		res.Done, res.Failed, res.Cancelled)
	switch {
	case res.Failed > 0:
		log.Error("%s", summary)
	case res.Cancelled > 0:
		log.Warn("%s", summary)
	default:
		log.Success("%s", summary)
	}
}

// progressNotifier renders live progress as a single rewritten terminal
// line on stderr. Inactive when stderr is not a terminal, so piped and
// logged output stays clean.
type progressNotifier struct {
	mu     sync.Mutex
	active bool
}

func (n *progressNotifier) JobUpdate(v queue.JobView) {
	if !term.IsTerminal(os.Stderr) {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if v.Stats == "" {
		n.clearLocked()
		return
	}
	line := strings.ReplaceAll(v.Stats, "\n", "  ")
	fmt.Fprintf(os.Stderr, "\r\033[K(%d/%d) %s", v.Index+1, v.Total, line)
	n.active = true
}

func (n *progressNotifier) BatchDone(*queue.BatchResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clearLocked()
}

func (n *progressNotifier) clearLocked() {
	if n.active {
		fmt.Fprint(os.Stderr, "\r\033[K")
		n.active = false
	}
}
