package trace

import (
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_ArrayFormat(t *testing.T) {
	in := `[
		{"name":"TracingStartedInPage","ph":"I","ts":1,"pid":1,"tid":2},
		{"name":"EvaluateScript","ph":"X","ts":10,"dur":5,"pid":1,"tid":2,
		 "args":{"data":{"url":"https://example.com/a.js"}}}
	]`

	events, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, PhaseInstant, events[0].Phase)
	assert.Equal(t, "EvaluateScript", events[1].Name)
	assert.Equal(t, 10.0, events[1].TS)
	assert.Equal(t, 15.0, events[1].EndTS())
	assert.Equal(t, "https://example.com/a.js", events[1].CandidateURL())
}

func TestDecode_ObjectFormat(t *testing.T) {
	in := "\n  {\"traceEvents\":[{\"name\":\"A\",\"ph\":\"B\",\"ts\":3,\"pid\":7,\"tid\":8}],\"metadata\":{}}"

	events, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 7, events[0].PID)
	assert.Equal(t, 8, events[0].TID)
}

func TestDecode_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"traceEvents":[{"name":"A","ph":"X","ts":1,"dur":2,"pid":1,"tid":1}]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	events, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2.0, events[0].Dur)
}

func TestDecode_ObjectWithoutTraceEvents(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"foo":1}`))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestDecode_EmptyAndGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("   "))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Decode(strings.NewReader("hello"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Decode(strings.NewReader("[{"))
	assert.Error(t, err)
}

func TestDecode_TolerantPayloads(t *testing.T) {
	in := `[
		{"name":"A","ph":"X","ts":1,"pid":1,"tid":1,"args":"nope"},
		{"name":"B","ph":"X","ts":2,"pid":1,"tid":1,"args":{"data":"str"}},
		{"name":"C","ph":"X","ts":3,"pid":1,"tid":1,"args":{"data":{"url":null,"stackTrace":{"bad":1}}}},
		{"name":"D","ph":"X","ts":4,"pid":1,"tid":1,"args":{"data":{"stackTrace":[{"url":"https://s.example/x.js","functionName":"f"}]}}}
	]`

	events, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Empty(t, events[0].CandidateURL())
	assert.Empty(t, events[1].CandidateURL())
	assert.Empty(t, events[2].CandidateURL())
	assert.Equal(t, "https://s.example/x.js", events[3].CandidateURL())
}

func TestCandidateURL_ExplicitBeatsStack(t *testing.T) {
	e := Event{Args: &Args{Data: &ArgsData{
		URL:        "https://a.example/explicit.js",
		StackTrace: []StackFrame{{URL: "https://a.example/stack.js"}},
	}}}
	assert.Equal(t, "https://a.example/explicit.js", e.CandidateURL())

	e.Args.Data.URL = ""
	assert.Equal(t, "https://a.example/stack.js", e.CandidateURL())

	e.Args.Data.StackTrace[0].URL = ""
	assert.Empty(t, e.CandidateURL())
}

func TestFindPrimaryThread_FirstMarkerWins(t *testing.T) {
	events := []Event{
		{Name: "Other", PID: 9, TID: 9},
		{Name: DefaultMarker, PID: 1, TID: 2},
		{Name: DefaultMarker, PID: 3, TID: 4},
	}
	th, err := FindPrimaryThread(events, "")
	require.NoError(t, err)
	assert.Equal(t, Thread{PID: 1, TID: 2}, th)
	assert.Equal(t, "pid=1 tid=2", th.String())
}

func TestFindPrimaryThread_Missing(t *testing.T) {
	_, err := FindPrimaryThread([]Event{{Name: "A"}}, DefaultMarker)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAnchor))
}

func TestFilterMainThread_ThreadAndPhase(t *testing.T) {
	events := []Event{
		{Name: DefaultMarker, Phase: PhaseInstant, TS: 0, PID: 1, TID: 1},
		{Name: "A", Phase: PhaseComplete, TS: 10, Dur: 5, PID: 1, TID: 1},
		{Name: "B", Phase: PhaseComplete, TS: 11, Dur: 1, PID: 1, TID: 2},
		{Name: "C", Phase: PhaseComplete, TS: 12, Dur: 1, PID: 2, TID: 1},
		{Name: "D", Phase: PhaseBegin, TS: 20, PID: 1, TID: 1},
		{Name: "meta", Phase: PhaseMetadata, TS: 21, PID: 1, TID: 1},
		{Name: "D", Phase: PhaseEnd, TS: 30, PID: 1, TID: 1},
		{Name: "async", Phase: "b", TS: 31, PID: 1, TID: 1},
	}

	out, th, err := FilterMainThread(events, DefaultMarker)
	require.NoError(t, err)
	assert.Equal(t, Thread{PID: 1, TID: 1}, th)

	var names []string
	for _, e := range out {
		names = append(names, e.Name+string(e.Phase))
	}
	assert.Equal(t, []string{"AX", "DB", "DE"}, names)
}

func TestFilterMainThread_SortsStably(t *testing.T) {
	events := []Event{
		{Name: DefaultMarker, Phase: PhaseInstant, PID: 1, TID: 1},
		{Name: "late", Phase: PhaseComplete, TS: 50, PID: 1, TID: 1},
		{Name: "tie1", Phase: PhaseComplete, TS: 10, PID: 1, TID: 1},
		{Name: "tie2", Phase: PhaseComplete, TS: 10, PID: 1, TID: 1},
	}

	out, _, err := FilterMainThread(events, "")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "tie1", out[0].Name)
	assert.Equal(t, "tie2", out[1].Name)
	assert.Equal(t, "late", out[2].Name)

	// input untouched
	assert.Equal(t, "late", events[1].Name)
}

func TestFilterMainThread_MissingMarker(t *testing.T) {
	_, _, err := FilterMainThread([]Event{{Name: "A", Phase: PhaseComplete}}, DefaultMarker)
	assert.True(t, errors.Is(err, ErrMissingAnchor))
}
