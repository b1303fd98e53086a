package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/mainthread/internal/storage"
)

// Execute implements the go-flags Commander interface for RemoveCommand.
func (c *RemoveCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for remove command")
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

	return c.executeWithStore(context.Background(), store)
}

// executeWithStore deletes the trace from a provided store (for testing).
func (c *RemoveCommand) executeWithStore(ctx context.Context, store storage.Store) error {
	if err := store.DeleteTrace(ctx, c.ID); err != nil {
		return fmt.Errorf("remove trace: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"id": c.ID, "removed": true})
	}
	fmt.Printf("Removed %s\n", c.ID)
	return nil
}
