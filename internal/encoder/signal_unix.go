//go:build unix

package encoder

import "syscall"

// Signal delivery is fire-and-forget: errors mean the process already
// exited (or never fully started), and the caller's own state tracks
// what matters.

func (p *Process) signalStop() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Signal(syscall.SIGSTOP)
	}
}

func (p *Process) signalCont() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Signal(syscall.SIGCONT)
	}
}

func (p *Process) signalTerm() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Signal(syscall.SIGTERM)
	}
}
