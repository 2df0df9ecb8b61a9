//go:build !unix

package encoder

// Platforms without POSIX job-control signals: pause/resume degrade to
// no-ops (the orchestrator's paused flag still gates its own behavior)
// and cancellation falls back to a hard kill.

func (p *Process) signalStop() {}

func (p *Process) signalCont() {}

func (p *Process) signalTerm() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}
