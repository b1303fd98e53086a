package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/runnerr0/mainthread/internal/config"
	"github.com/runnerr0/mainthread/internal/storage"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one trace file is required for import command")
	}

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

	return c.executeWith(context.Background(), cfg, store, args[0])
}

// executeWith validates and archives one trace file.
func (c *ImportCommand) executeWith(ctx context.Context, cfg *config.Config, store storage.Store, path string) error {
	body, err := readTraceFile(path, cfg.Storage.MaxTraceBytes)
	if err != nil {
		return err
	}

	// Refuse bodies the analyzer could never read.
	events, err := decodeTrace(body)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	label := c.Label
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	tr := &storage.Trace{
		Label:      label,
		SourcePath: abs,
		EventCount: int64(len(events)),
	}
	err = store.AddTrace(ctx, tr, body)
	duplicate := errors.Is(err, storage.ErrDuplicateTrace)
	if err != nil && !duplicate {
		return fmt.Errorf("archive trace: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{
			"id":        tr.ID,
			"label":     tr.Label,
			"events":    tr.EventCount,
			"bytes":     tr.ByteSize,
			"duplicate": duplicate,
		})
	}

	if duplicate {
		fmt.Printf("Already archived as %s\n", tr.ID)
		return nil
	}
	fmt.Printf("Archived %s: %s (%s events, %s)\n",
		tr.ID, tr.Label, formatNumber(tr.EventCount), formatBytes(tr.ByteSize))
	return nil
}
