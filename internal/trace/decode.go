package trace

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode"
)

// ErrUnknownFormat is returned when the input is neither a JSON array of
// events nor an object with a traceEvents array.
var ErrUnknownFormat = errors.New("unrecognized trace format")

// Decode reads a Chrome trace in either container shape: a bare array of
// events, or an object with a "traceEvents" array. Gzip input is detected
// by its magic bytes and decompressed transparently.
func Decode(r io.Reader) ([]Event, error) {
	br := bufio.NewReader(r)

	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip trace: %w", err)
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	first, err := peekNonSpace(br)
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty trace: %w", ErrUnknownFormat)
		}
		return nil, fmt.Errorf("read trace: %w", err)
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var events []Event
		if err := dec.Decode(&events); err != nil {
			return nil, fmt.Errorf("decode trace array: %w", err)
		}
		return events, nil
	case '{':
		var doc struct {
			TraceEvents []Event `json:"traceEvents"`
		}
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode trace object: %w", err)
		}
		if doc.TraceEvents == nil {
			return nil, fmt.Errorf("object has no traceEvents: %w", ErrUnknownFormat)
		}
		return doc.TraceEvents, nil
	default:
		return nil, fmt.Errorf("unexpected leading %q: %w", first, ErrUnknownFormat)
	}
}

// peekNonSpace discards leading whitespace and returns the next rune
// without consuming it.
func peekNonSpace(br *bufio.Reader) (rune, error) {
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return 0, err
		}
		if unicode.IsSpace(r) || r == '\uFEFF' {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return 0, err
		}
		return r, nil
	}
}
