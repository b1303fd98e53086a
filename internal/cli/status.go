package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/mainthread/internal/config"
	"github.com/runnerr0/mainthread/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalTraces       int64  `json:"total_traces"`
	TotalEvents       int64  `json:"total_events"`
	TotalBytes        int64  `json:"total_bytes"`
	OldestImport      string `json:"oldest_import,omitempty"`
	NewestImport      string `json:"newest_import,omitempty"`
	MarkerEvent       string `json:"marker_event"`
	Parallelism       int    `json:"parallelism"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWith(context.Background(), cfg, store)
}

// executeWith runs status against a provided config and store (for testing).
func (c *StatusCommand) executeWith(ctx context.Context, cfg *config.Config, store storage.Store) error {
	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(cfg, stats, dbPath)
	}
	c.printStatusHuman(cfg, stats, dbPath)
	return nil
}

func (c *StatusCommand) printStatusHuman(cfg *config.Config, stats *storage.Stats, dbPath string) {
	fmt.Println("mainthread status")
	fmt.Println("=================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(stats.DatabaseSizeBytes))
	fmt.Printf("Traces:        %s\n", formatNumber(stats.TotalTraces))
	fmt.Printf("Events:        %s\n", formatNumber(stats.TotalEvents))
	fmt.Printf("Stored:        %s\n", formatBytes(stats.TotalBytes))

	if stats.TotalTraces > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestImport.Local().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestImport.Local().Format("2006-01-02"))
	}

	fmt.Println()
	fmt.Printf("Marker event:  %s\n", cfg.Analysis.MarkerEvent)
	fmt.Printf("Parallelism:   %d\n", cfg.Analysis.Parallelism)
}

func (c *StatusCommand) printStatusJSON(cfg *config.Config, stats *storage.Stats, dbPath string) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: stats.DatabaseSizeBytes,
		TotalTraces:       stats.TotalTraces,
		TotalEvents:       stats.TotalEvents,
		TotalBytes:        stats.TotalBytes,
		MarkerEvent:       cfg.Analysis.MarkerEvent,
		Parallelism:       cfg.Analysis.Parallelism,
	}

	if stats.TotalTraces > 0 {
		out.OldestImport = stats.OldestImport.UTC().Format(time.RFC3339)
		out.NewestImport = stats.NewestImport.UTC().Format(time.RFC3339)
	}

	return printJSON(out)
}
