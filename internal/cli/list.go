package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/mainthread/internal/storage"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
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

	return c.executeWithStore(context.Background(), store)
}

// executeWithStore lists archived traces from a provided store (for testing).
func (c *ListCommand) executeWithStore(ctx context.Context, store storage.Store) error {
	traces, err := store.ListTraces(ctx, storage.ListQuery{Label: c.Label, Limit: c.Limit})
	if err != nil {
		return fmt.Errorf("list traces: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(traces)
	}

	if len(traces) == 0 {
		fmt.Println("No archived traces")
		return nil
	}

	fmt.Printf("%-12s  %-24s  %10s  %10s  %s\n", "ID", "LABEL", "EVENTS", "SIZE", "IMPORTED")
	for _, tr := range traces {
		fmt.Printf("%-12s  %-24s  %10s  %10s  %s\n",
			tr.ID, tr.Label, formatNumber(tr.EventCount), formatBytes(tr.ByteSize),
			tr.ImportedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
