//go:build unix

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/wesen/encodeq/internal/queue"
)

// watchPause maps SIGUSR1 to the orchestrator's pause toggle, so a
// running batch can be paused from another shell:
//
//	kill -USR1 $(pidof encodeq)
//
// The returned function unregisters the handler.
func watchPause(orch *queue.Orchestrator) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)

	go func() {
		for range ch {
			orch.TogglePause()
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
