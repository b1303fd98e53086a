package trace

import (
	"bytes"
	"encoding/json"
)

// Phase is the Chrome trace event phase code.
type Phase string

const (
	PhaseBegin    Phase = "B"
	PhaseEnd      Phase = "E"
	PhaseComplete Phase = "X"
	PhaseInstant  Phase = "I"
	PhaseMetadata Phase = "M"
)

// Structural reports whether the phase carries nesting or timing meaning.
func (p Phase) Structural() bool {
	return p == PhaseBegin || p == PhaseEnd || p == PhaseComplete
}

// Event is a single record from a Chrome trace. Timestamps and durations are
// microseconds.
type Event struct {
	Name  string  `json:"name"`
	Cat   string  `json:"cat,omitempty"`
	Phase Phase   `json:"ph"`
	TS    float64 `json:"ts"`
	Dur   float64 `json:"dur,omitempty"` // only meaningful for PhaseComplete
	PID   int     `json:"pid"`
	TID   int     `json:"tid"`
	Args  *Args   `json:"args,omitempty"`
}

// Args is the optional event payload.
type Args struct {
	Data *ArgsData `json:"data,omitempty"`
}

// ArgsData holds the payload fields used for URL attribution.
type ArgsData struct {
	URL        string       `json:"url,omitempty"`
	StackTrace []StackFrame `json:"stackTrace,omitempty"`
}

// StackFrame is one call-stack entry.
type StackFrame struct {
	FunctionName string `json:"functionName,omitempty"`
	URL          string `json:"url,omitempty"`
	LineNumber   int    `json:"lineNumber,omitempty"`
	ColumnNumber int    `json:"columnNumber,omitempty"`
}

// Chrome emits non-object payloads for some events; those decode as empty.
func (a *Args) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		*a = Args{}
		return nil
	}
	type plain Args
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Args(p)
	return nil
}

func (d *ArgsData) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		*d = ArgsData{}
		return nil
	}
	var raw struct {
		URL        json.RawMessage `json:"url"`
		StackTrace json.RawMessage `json:"stackTrace"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = ArgsData{}
	if len(raw.URL) > 0 {
		// url is occasionally null or numeric; only strings count.
		_ = json.Unmarshal(raw.URL, &d.URL)
	}
	if len(raw.StackTrace) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw.StackTrace), []byte("[")) {
		if err := json.Unmarshal(raw.StackTrace, &d.StackTrace); err != nil {
			d.StackTrace = nil
		}
	}
	return nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

// EndTS returns the end timestamp of a complete event.
func (e *Event) EndTS() float64 {
	return e.TS + e.Dur
}

// CandidateURL returns the URL the event itself points at: the explicit
// payload URL, else the first stack frame's URL, else "".
func (e *Event) CandidateURL() string {
	if e.Args == nil || e.Args.Data == nil {
		return ""
	}
	if e.Args.Data.URL != "" {
		return e.Args.Data.URL
	}
	if len(e.Args.Data.StackTrace) > 0 {
		return e.Args.Data.StackTrace[0].URL
	}
	return ""
}
