// Package encoder spawns and controls one external encode process per
// job. The two output streams are captured independently, the
// structured progress feed on stdout and the free-text diagnostic log
// on stderr, and must never be merged: interleaving would corrupt the
// progress block framing.
//
// Pause, Resume, and Cancel map to OS process-control signals and are
// best-effort: a failed signal (process already exited, or platform
// without the primitive) degrades to a no-op. The orchestrator's own
// flags are the source of truth for "paused"; OS-level stop state
// cannot be queried portably.
package encoder

import (
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// Process is a handle to one running encode subprocess.
type Process struct {
	cmd *exec.Cmd

	// Progress delivers the structured key=value feed (stdout).
	Progress io.ReadCloser
	// Diag delivers the free-text diagnostic log (stderr).
	Diag io.ReadCloser

	mu     sync.Mutex
	waited bool
	err    error
}

// Start spawns argv[0] with the remaining arguments, with stdout and
// stderr piped separately. A non-nil error means the process never
// started (binary missing or not executable).
func Start(argv []string) (*Process, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("progress pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("diagnostic pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	return &Process{cmd: cmd, Progress: stdout, Diag: stderr}, nil
}

// Wait blocks until the process exits and returns its exit error (nil
// for status 0). Safe to call more than once; later calls return the
// first result. Both output streams must be drained before calling
// Wait, or the child can deadlock on a full pipe buffer.
func (p *Process) Wait() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.waited {
		p.err = p.cmd.Wait()
		p.waited = true
	}
	return p.err
}

// Exited reports whether Wait has observed process exit.
func (p *Process) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waited
}

// Pause suspends the process (SIGSTOP). Best-effort no-op on failure or
// on platforms without stop signals.
func (p *Process) Pause() { p.signalStop() }

// Resume continues a suspended process (SIGCONT). Best-effort.
func (p *Process) Resume() { p.signalCont() }

// Cancel asks the process to terminate. When paused is true the
// process is resumed first; delivering a terminate signal to a
// stopped process is unreliable on some platforms. Idempotent:
// cancelling an already-exited process is a no-op, not an error.
func (p *Process) Cancel(paused bool) {
	if p.Exited() {
		return
	}
	if paused {
		p.signalCont()
	}
	p.signalTerm()
}
