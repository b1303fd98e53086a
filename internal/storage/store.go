package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/mainthread/internal/logging"
)

// Store defines the interface for trace archive operations.
type Store interface {
	AddTrace(ctx context.Context, tr *Trace, body []byte) error
	GetTrace(ctx context.Context, id string) (*Trace, error)
	GetTraceBody(ctx context.Context, id string) ([]byte, error)
	ListTraces(ctx context.Context, query ListQuery) ([]Trace, error)
	DeleteTrace(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertTrace *sql.Stmt
	getTrace    *sql.Stmt
	getBody     *sql.Stmt
	findByHash  *sql.Stmt
	deleteTrace *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertTrace, err = s.db.Prepare(`
		INSERT INTO traces (id, label, source_path, byte_size, event_count, content_hash, imported_at, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getTrace, err = s.db.Prepare(`
		SELECT id, label, source_path, byte_size, event_count, content_hash, imported_at
		FROM traces WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.getBody, err = s.db.Prepare(`SELECT body FROM traces WHERE id = ?`)
	if err != nil {
		return err
	}

	s.findByHash, err = s.db.Prepare(`SELECT id FROM traces WHERE content_hash = ?`)
	if err != nil {
		return err
	}

	s.deleteTrace, err = s.db.Prepare(`DELETE FROM traces WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// generateID creates an archive trace ID: TRC- + 8 random hex chars.
func generateID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "TRC-" + hex.EncodeToString(b), nil
}

// ContentHash returns the hex sha256 of a raw trace body.
func ContentHash(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999-07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// AddTrace stores a raw trace body. ID, ByteSize and ContentHash are
// populated automatically. If an identical body is already archived, tr.ID
// is set to the existing ID and ErrDuplicateTrace is returned.
func (s *SQLiteStore) AddTrace(ctx context.Context, tr *Trace, body []byte) error {
	tr.ContentHash = ContentHash(body)
	tr.ByteSize = int64(len(body))

	var existing string
	err := s.findByHash.QueryRowContext(ctx, tr.ContentHash).Scan(&existing)
	switch {
	case err == nil:
		tr.ID = existing
		return fmt.Errorf("%w as %s", ErrDuplicateTrace, existing)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("lookup content hash: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return fmt.Errorf("generate ID: %w", err)
	}
	tr.ID = id

	if tr.ImportedAt.IsZero() {
		tr.ImportedAt = time.Now()
	}

	tsFormatted := tr.ImportedAt.UTC().Format(time.RFC3339)
	_, err = s.insertTrace.ExecContext(ctx,
		tr.ID, tr.Label, tr.SourcePath, tr.ByteSize, tr.EventCount, tr.ContentHash, tsFormatted, body,
	)
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}

	logging.New("storage").Debug("trace archived",
		"id", tr.ID, "bytes", tr.ByteSize, "events", tr.EventCount)
	return nil
}

// GetTrace retrieves the metadata of a single trace by ID.
func (s *SQLiteStore) GetTrace(ctx context.Context, id string) (*Trace, error) {
	var tr Trace
	var tsStr string

	err := s.getTrace.QueryRowContext(ctx, id).Scan(
		&tr.ID, &tr.Label, &tr.SourcePath, &tr.ByteSize, &tr.EventCount, &tr.ContentHash, &tsStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get trace: %w", err)
	}

	tr.ImportedAt, _ = parseTimestamp(tsStr)
	return &tr, nil
}

// GetTraceBody retrieves the raw stored trace bytes.
func (s *SQLiteStore) GetTraceBody(ctx context.Context, id string) ([]byte, error) {
	var body []byte
	err := s.getBody.QueryRowContext(ctx, id).Scan(&body)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get trace body: %w", err)
	}
	return body, nil
}

// ListTraces returns archived trace metadata, newest first.
func (s *SQLiteStore) ListTraces(ctx context.Context, q ListQuery) ([]Trace, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var clauses []string
	var args []interface{}

	baseQuery := `
		SELECT id, label, source_path, byte_size, event_count, content_hash, imported_at
		FROM traces
	`

	if q.Label != "" {
		clauses = append(clauses, "label = ?")
		args = append(args, q.Label)
	}
	if !q.Since.IsZero() {
		clauses = append(clauses, "imported_at >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	fullQuery := baseQuery + where + " ORDER BY imported_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, fullQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer rows.Close()

	traces := []Trace{}
	for rows.Next() {
		var tr Trace
		var tsStr string
		if err := rows.Scan(
			&tr.ID, &tr.Label, &tr.SourcePath, &tr.ByteSize, &tr.EventCount, &tr.ContentHash, &tsStr,
		); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		tr.ImportedAt, _ = parseTimestamp(tsStr)
		traces = append(traces, tr)
	}

	return traces, rows.Err()
}

// DeleteTrace removes a trace by ID.
func (s *SQLiteStore) DeleteTrace(ctx context.Context, id string) error {
	res, err := s.deleteTrace.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete trace: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// GetStats returns aggregate statistics about the archive.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(event_count), 0), COALESCE(SUM(byte_size), 0) FROM traces",
	).Scan(&stats.TotalTraces, &stats.TotalEvents, &stats.TotalBytes)
	if err != nil {
		return nil, fmt.Errorf("count traces: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalTraces > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(imported_at), MAX(imported_at) FROM traces").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("import time range: %w", err)
		}
		stats.OldestImport, _ = parseTimestamp(oldestStr)
		stats.NewestImport, _ = parseTimestamp(newestStr)
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats.DatabaseSizeBytes = pageCount * pageSize
		}
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertTrace, s.getTrace, s.getBody, s.findByHash, s.deleteTrace,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
