package tasks

import (
	"errors"
	"fmt"

	"github.com/runnerr0/mainthread/internal/taxonomy"
	"github.com/runnerr0/mainthread/internal/trace"
)

// Builder turns raw trace events into a Forest. The zero value uses the
// default taxonomy and marker event. A Builder holds no per-trace state and
// may be shared across goroutines.
type Builder struct {
	Taxonomy *taxonomy.Taxonomy
	Marker   string
}

// Build is shorthand for a zero Builder's Build.
func Build(events []trace.Event) (*Forest, error) {
	var b Builder
	return b.Build(events)
}

// Build selects the primary thread's events and reconstructs its forest.
// It returns either a fully resolved forest or a *TraceError.
func (b *Builder) Build(events []trace.Event) (*Forest, error) {
	marker := b.Marker
	if marker == "" {
		marker = trace.DefaultMarker
	}

	mainThread, thread, err := trace.FilterMainThread(events, marker)
	if err != nil {
		if errors.Is(err, trace.ErrMissingAnchor) {
			return nil, traceErrorf(ErrMissingAnchor, "no %q event", marker)
		}
		return nil, fmt.Errorf("filter main thread: %w", err)
	}

	f, err := b.BuildThread(mainThread)
	if err != nil {
		return nil, err
	}
	f.thread = thread
	return f, nil
}

// BuildThread reconstructs a forest from events already limited to one
// thread and sorted by timestamp. The forest takes ownership of events.
func (b *Builder) BuildThread(events []trace.Event) (*Forest, error) {
	tx := b.Taxonomy
	if tx == nil {
		tx = taxonomy.Default()
	}

	f, err := reconstruct(events)
	if err != nil {
		return nil, err
	}

	f.aggregate()
	f.attribute()
	f.classify(tx)
	if err := f.normalize(); err != nil {
		return nil, err
	}
	return f, nil
}
