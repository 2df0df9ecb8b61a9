//go:build !unix

package main

import "github.com/wesen/encodeq/internal/queue"

// watchPause is a no-op on platforms without SIGUSR1.
func watchPause(orch *queue.Orchestrator) func() {
	return func() {}
}
