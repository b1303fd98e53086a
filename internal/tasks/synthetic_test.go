package tasks

import (
	"math/rand"

	"github.com/runnerr0/mainthread/internal/trace"
)

var syntheticNames = []string{
	"RunTask", "EvaluateScript", "FunctionCall", "Layout", "UpdateLayoutTree",
	"Paint", "MinorGC", "ParseHTML", "v8.compile", "TimerFire", "CustomWork",
}

var syntheticURLs = []string{
	"https://example.com/app.js",
	"https://cdn.example.net/vendor.js",
	"https://ads.example.org/tag.js",
}

// syntheticTrace builds a well-formed trace with the given number of
// top-level windows on the main thread, plus noise on another thread.
// Timestamps are integral microseconds and never tie.
func syntheticTrace(seed int64, roots int) []trace.Event {
	r := rand.New(rand.NewSource(seed))

	events := []trace.Event{
		{Name: "thread_name", Phase: trace.PhaseMetadata, PID: testPID, TID: testTID},
		{Name: trace.DefaultMarker, Phase: trace.PhaseInstant, TS: base, PID: testPID, TID: testTID},
	}

	cursor := base + 100
	for i := 0; i < roots; i++ {
		width := 2000 + r.Intn(48000)
		emitTask(r, &events, cursor, cursor+width, 6)
		events = append(events, trace.Event{
			Name: "WorkerTask", Phase: trace.PhaseComplete,
			TS: float64(cursor + 10), Dur: 500, PID: testPID, TID: testTID + 1,
		})
		cursor += width + 1 + r.Intn(5000)
	}
	return events
}

// emitTask appends one task spanning [start, end] and its nested children.
func emitTask(r *rand.Rand, out *[]trace.Event, start, end, depth int) {
	name := syntheticNames[r.Intn(len(syntheticNames))]
	e := trace.Event{Name: name, TS: float64(start), PID: testPID, TID: testTID}
	if r.Intn(4) == 0 {
		e.Args = &trace.Args{Data: &trace.ArgsData{URL: syntheticURLs[r.Intn(len(syntheticURLs))]}}
	}

	if r.Intn(2) == 0 {
		e.Phase = trace.PhaseComplete
		e.Dur = float64(end - start)
		*out = append(*out, e)
		emitChildren(r, out, start, end, depth-1)
		return
	}

	e.Phase = trace.PhaseBegin
	*out = append(*out, e)
	emitChildren(r, out, start, end, depth-1)
	*out = append(*out, trace.Event{Name: name, Phase: trace.PhaseEnd, TS: float64(end), PID: testPID, TID: testTID})
}

// emitChildren places up to three non-overlapping children strictly inside
// (start, end).
func emitChildren(r *rand.Rand, out *[]trace.Event, start, end, depth int) {
	if depth <= 0 {
		return
	}
	cursor := start + 1
	for n := 1 + r.Intn(3); n > 0; n-- {
		room := end - 1 - cursor
		if room < 4 {
			return
		}
		width := 2 + r.Intn(room/2)
		s := cursor + r.Intn((room-width)/2+1)
		emitTask(r, out, s, s+width, depth)
		cursor = s + width + 1
	}
}
