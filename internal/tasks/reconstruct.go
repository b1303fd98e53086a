package tasks

import (
	"math"

	"github.com/runnerr0/mainthread/internal/trace"
)

// reconstruct nests timestamp-ordered main-thread events into a forest. The
// forest keeps pointers into events, so the caller must hand over ownership.
//
// The cursor is the innermost open task. Before each event, tasks whose end
// has passed are closed out by walking up the parent chain.
func reconstruct(events []trace.Event) (*Forest, error) {
	f := &Forest{
		tasks:  make([]Task, 0, len(events)),
		events: events,
	}

	cur := NoParent
	for i := range events {
		e := &events[i]
		if !e.Phase.Structural() {
			continue
		}

		for cur != NoParent && f.tasks[cur].resolved() && f.tasks[cur].EndTime <= e.TS {
			cur = f.tasks[cur].Parent
		}

		if cur == NoParent {
			if e.Phase == trace.PhaseEnd {
				return nil, traceErrorf(ErrUnbalancedTrace,
					"%q end at ts=%v (event %d) with no open task", e.Name, e.TS, i)
			}
			cur = f.open(e, NoParent)
			f.roots = append(f.roots, cur)
			continue
		}

		switch e.Phase {
		case trace.PhaseComplete, trace.PhaseBegin:
			cur = f.open(e, cur)
		case trace.PhaseEnd:
			t := &f.tasks[cur]
			if t.Event.Phase != trace.PhaseBegin {
				return nil, traceErrorf(ErrMismatchedEvent,
					"%q end at ts=%v (event %d) while %q (ph=%s) is current",
					e.Name, e.TS, i, t.Event.Name, t.Event.Phase)
			}
			t.EndTime = e.TS
			cur = t.Parent
		}
	}

	return f, nil
}

// open appends a task for e under parent and returns its ID.
func (f *Forest) open(e *trace.Event, parent int) int {
	end := math.NaN()
	if e.Phase == trace.PhaseComplete {
		end = e.EndTS()
	}

	id := len(f.tasks)
	f.tasks = append(f.tasks, Task{
		ID:        id,
		Event:     e,
		StartTime: e.TS,
		EndTime:   end,
		Parent:    parent,
	})
	if parent != NoParent {
		f.tasks[parent].Children = append(f.tasks[parent].Children, id)
	}
	return id
}
