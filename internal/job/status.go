package job

// Status is a job's position in its lifecycle. The machine is
// PENDING → ENCODING → {DONE, FAILED, CANCELLED}; PAUSED is a transient
// sub-state of ENCODING (the process is suspended but the job still
// owns the queue's active slot). Terminal states absorb.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusEncoding  Status = "Encoding"
	StatusPaused    Status = "Paused"
	StatusDone      Status = "Done"
	StatusFailed    Status = "Failed"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether s occupies the queue's single active slot.
func (s Status) Active() bool {
	return s == StatusEncoding || s == StatusPaused
}

// CanTransition reports whether the edge from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusEncoding
	case StatusEncoding:
		return next == StatusPaused || next.Terminal()
	case StatusPaused:
		return next == StatusEncoding || next.Terminal()
	default: // terminal
		return false
	}
}

// Icon returns the results-table marker for a terminal status.
func (s Status) Icon() string {
	switch s {
	case StatusDone:
		return "✅"
	case StatusFailed:
		return "❌"
	default:
		return "⊘"
	}
}
