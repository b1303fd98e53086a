package trace

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultMarker is the event that marks the start of page tracking. Its
// pid/tid identify the page's main thread.
const DefaultMarker = "TracingStartedInPage"

// ErrMissingAnchor is returned when no marker event exists in the trace.
var ErrMissingAnchor = errors.New("missing primary thread marker")

// Thread identifies one thread of one process.
type Thread struct {
	PID int
	TID int
}

func (t Thread) String() string {
	return fmt.Sprintf("pid=%d tid=%d", t.PID, t.TID)
}

// FindPrimaryThread returns the thread of the first event named marker.
func FindPrimaryThread(events []Event, marker string) (Thread, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	for i := range events {
		if events[i].Name == marker {
			return Thread{PID: events[i].PID, TID: events[i].TID}, nil
		}
	}
	return Thread{}, fmt.Errorf("%w: no %q event", ErrMissingAnchor, marker)
}

// FilterMainThread keeps only Begin/End/Complete events on the primary
// thread, ordered by timestamp with ties kept in input order. The input
// slice is not modified.
func FilterMainThread(events []Event, marker string) ([]Event, Thread, error) {
	thread, err := FindPrimaryThread(events, marker)
	if err != nil {
		return nil, Thread{}, err
	}

	out := make([]Event, 0, len(events)/2)
	for i := range events {
		e := &events[i]
		if e.PID != thread.PID || e.TID != thread.TID {
			continue
		}
		if !e.Phase.Structural() {
			continue
		}
		out = append(out, *e)
	}
	SortStable(out)

	return out, thread, nil
}

// SortStable orders events by timestamp, keeping input order on ties.
func SortStable(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TS < events[j].TS
	})
}
