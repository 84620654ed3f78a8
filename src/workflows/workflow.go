package workflows

import (
	"context"

	"github.com/username/apexbank/client/src/directory"
	"github.com/username/apexbank/client/src/logger"
)

// Phase is the tagged state of a workflow modal.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ValidationError blocks submission before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Modal is the shared state of one short-lived workflow interaction:
// {idle -> submitting -> succeeded|failed}. A failed workflow stays open
// so the user can correct input and resubmit; each workflow is a fault
// isolation unit and nothing propagates past it.
type Modal struct {
	phase      Phase
	err        error
	message    string
	refreshErr error
	closed     bool
}

func (m *Modal) Phase() Phase   { return m.phase }
func (m *Modal) Err() error     { return m.err }
func (m *Modal) Message() string { return m.message }
func (m *Modal) Closed() bool   { return m.closed }

// RefreshErr reports a directory refresh that failed after the mutation
// itself succeeded. It never demotes the success.
func (m *Modal) RefreshErr() error { return m.refreshErr }

func (m *Modal) Close() { m.closed = true }

func (m *Modal) begin() {
	m.phase = PhaseSubmitting
	m.err = nil
	m.refreshErr = nil
}

func (m *Modal) fail(err error) error {
	m.phase = PhaseFailed
	m.err = err
	return err
}

// commit records success, refreshes the directory exactly once and
// closes the modal. A refresh failure is a secondary, independently
// reported error.
func (m *Modal) commit(ctx context.Context, dir *directory.Directory, message string) {
	m.phase = PhaseSucceeded
	m.err = nil
	m.message = message
	if err := dir.Refresh(ctx); err != nil {
		m.refreshErr = err
		logger.FromContext(ctx).Error("Directory refresh failed after a committed operation", "error", err)
	}
	m.Close()
}
