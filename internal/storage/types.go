package storage

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("trace not found")
	ErrDuplicateTrace = errors.New("trace already archived")
)

// Trace is the metadata of one archived raw trace file.
type Trace struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	SourcePath  string    `json:"source_path"`
	ByteSize    int64     `json:"byte_size"`
	EventCount  int64     `json:"event_count"`
	ContentHash string    `json:"content_hash"`
	ImportedAt  time.Time `json:"imported_at"`
}

// ListQuery defines filters for listing archived traces.
type ListQuery struct {
	Label  string
	Since  time.Time
	Limit  int
	Offset int
}

// Stats holds aggregate statistics about the archive.
type Stats struct {
	TotalTraces       int64
	TotalEvents       int64
	TotalBytes        int64
	OldestImport      time.Time
	NewestImport      time.Time
	DatabaseSizeBytes int64
}
