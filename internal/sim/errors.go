package sim

import (
	"errors"
	"fmt"
)

// State-machine misuse and business errors. All validation failures are
// returned as values; nothing panics across the controller boundary.
var (
	ErrInvalidConfig         = errors.New("invalid session config")
	ErrSessionAlreadyStarted = errors.New("session already started")
	ErrSessionNotActive      = errors.New("session not active")
	ErrSessionClosed         = errors.New("session closed")
	ErrNoEventPending        = errors.New("no event pending")
	ErrInvalidChoice         = errors.New("unknown event choice")
	ErrBudgetDeficit         = errors.New("expenses exceed income")
	ErrUnknownTask           = errors.New("unknown task")
	ErrTaskAlreadyDone       = errors.New("task already completed")
)

// ReportError wraps a completion-report delivery failure. The session's
// terminal state and final score stand regardless; the caller may retry
// delivery keyed by session id.
type ReportError struct {
	SessionID string
	Err       error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("completion report for session %s failed: %v", e.SessionID, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }
