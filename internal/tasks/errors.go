package tasks

import (
	"errors"
	"fmt"

	"github.com/runnerr0/mainthread/internal/trace"
)

var (
	ErrMissingAnchor   = trace.ErrMissingAnchor
	ErrUnbalancedTrace = errors.New("unbalanced trace")
	ErrMismatchedEvent = errors.New("mismatched end event")
	ErrInvalidTiming   = errors.New("invalid task timing")
)

// TraceError wraps a fatal trace analysis failure. Kind is one of the
// sentinel errors above and is matched with errors.Is.
type TraceError struct {
	Kind error
	Msg  string
}

func (e *TraceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *TraceError) Unwrap() error { return e.Kind }

func traceErrorf(kind error, format string, args ...any) error {
	return &TraceError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
