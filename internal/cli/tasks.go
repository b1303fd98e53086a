package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/mainthread/internal/config"
	"github.com/runnerr0/mainthread/internal/storage"
	"github.com/runnerr0/mainthread/internal/tasks"
	"github.com/runnerr0/mainthread/internal/taxonomy"
)

// taskJSON is one printed node of the task tree.
type taskJSON struct {
	ID       int              `json:"id"`
	Parent   int              `json:"parent"`
	Depth    int              `json:"depth"`
	Name     string           `json:"name"`
	Start    float64          `json:"start_ms"`
	Duration float64          `json:"duration_ms"`
	SelfTime float64          `json:"self_time_ms"`
	Group    taxonomy.GroupID `json:"group"`
	URL      string           `json:"url,omitempty"`
}

// Execute implements the go-flags Commander interface for TasksCommand.
func (c *TasksCommand) Execute(args []string) error {
	if c.ID == "" && len(args) != 1 {
		return fmt.Errorf("exactly one trace file or --id is required for tasks command")
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	var store storage.Store
	if c.ID != "" {
		s, db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		defer s.Close()
		store = s
	}

	return c.executeWith(context.Background(), cfg, store, args)
}

// executeWith prints the task tree of one file or archived trace.
func (c *TasksCommand) executeWith(ctx context.Context, cfg *config.Config, store storage.Store, args []string) error {
	var src traceSource
	switch {
	case c.ID != "" && len(args) == 0:
		src.ID = c.ID
	case c.ID == "" && len(args) == 1:
		src.Path = args[0]
	default:
		return fmt.Errorf("exactly one trace file or --id is required for tasks command")
	}

	marker := cfg.Analysis.MarkerEvent
	if c.Marker != "" {
		marker = c.Marker
	}
	forest, err := loadForest(ctx, &tasks.Builder{Marker: marker}, cfg, store, src)
	if err != nil {
		return err
	}

	var nodes []taskJSON
	forest.Walk(func(t tasks.Task, depth int) bool {
		if c.Depth > 0 && depth >= c.Depth {
			return false
		}
		if t.Duration < c.MinMs {
			return false
		}
		n := taskJSON{
			ID:       t.ID,
			Parent:   t.Parent,
			Depth:    depth,
			Name:     t.Event.Name,
			Start:    t.StartTime,
			Duration: t.Duration,
			SelfTime: t.SelfTime,
			URL:      t.AttributableURL,
		}
		if t.Group != nil {
			n.Group = t.Group.ID
		}
		nodes = append(nodes, n)
		return true
	})

	if c.globals != nil && c.globals.JSON {
		if nodes == nil {
			nodes = []taskJSON{}
		}
		return printJSON(nodes)
	}

	fmt.Printf("Thread %s, %d tasks\n", forest.Thread(), forest.Len())
	for _, n := range nodes {
		fmt.Printf("%s%s  %s (self %s) [%s]",
			strings.Repeat("  ", n.Depth), n.Name, formatMs(n.Duration), formatMs(n.SelfTime), n.Group)
		if n.URL != "" {
			fmt.Printf(" %s", n.URL)
		}
		fmt.Println()
	}
	return nil
}
