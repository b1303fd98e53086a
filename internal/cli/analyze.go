package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/mainthread/internal/breakdown"
	"github.com/runnerr0/mainthread/internal/config"
	"github.com/runnerr0/mainthread/internal/logging"
	"github.com/runnerr0/mainthread/internal/storage"
	"github.com/runnerr0/mainthread/internal/tasks"
)

// traceSource names one trace to analyze: a file path or an archive ID.
type traceSource struct {
	Path string
	ID   string
}

func (s traceSource) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Path
}

// analysisResult is the per-trace output of analyze.
type analysisResult struct {
	Source  string             `json:"source"`
	Thread  string             `json:"thread,omitempty"`
	Summary *breakdown.Summary `json:"summary,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	var store storage.Store
	if len(c.IDs) > 0 {
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

// executeWith analyzes files and archived IDs against the given config and store.
// store may be nil when no IDs are requested.
func (c *AnalyzeCommand) executeWith(ctx context.Context, cfg *config.Config, store storage.Store, files []string) error {
	var sources []traceSource
	for _, f := range files {
		sources = append(sources, traceSource{Path: f})
	}
	for _, id := range c.IDs {
		sources = append(sources, traceSource{ID: id})
	}
	if len(sources) == 0 {
		return fmt.Errorf("at least one trace file or --id is required for analyze command")
	}
	if len(c.IDs) > 0 && store == nil {
		return fmt.Errorf("no trace archive available for --id")
	}

	marker := cfg.Analysis.MarkerEvent
	if c.Marker != "" {
		marker = c.Marker
	}
	builder := &tasks.Builder{Marker: marker}
	log := logging.New("analyze")

	results := make([]analysisResult, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Analysis.Parallelism)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = analyzeOne(gCtx, builder, cfg, store, src)
			if results[i].Error != "" {
				log.Debug("trace failed", "source", src.String(), "error", results[i].Error)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	top := c.Top
	if top == 0 {
		top = cfg.Analysis.Top
	}
	for i := range results {
		if results[i].Summary == nil {
			continue
		}
		results[i].Summary.ByURL = breakdown.Top(results[i].Summary.ByURL, top)
		results[i].Summary.ByCategory = breakdown.Top(results[i].Summary.ByCategory, top)
	}

	if c.globals != nil && c.globals.JSON {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printAnalysisHuman(results)
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d traces failed", failed, len(results))
	}
	return nil
}

// analyzeOne loads, decodes and builds a single trace. Failures are
// reported in the result so one bad trace does not hide the others.
func analyzeOne(ctx context.Context, b *tasks.Builder, cfg *config.Config, store storage.Store, src traceSource) analysisResult {
	res := analysisResult{Source: src.String()}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	start := time.Now()
	forest, err := loadForest(ctx, b, cfg, store, src)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	summary := breakdown.Summarize(forest)
	res.Thread = forest.Thread().String()
	res.Summary = &summary

	logging.New("analyze").Debug("trace analyzed",
		"source", res.Source, "tasks", forest.Len(), "roots", summary.RootCount,
		"elapsed", time.Since(start))
	return res
}

// loadForest reads a trace from disk or the archive and builds its forest.
func loadForest(ctx context.Context, b *tasks.Builder, cfg *config.Config, store storage.Store, src traceSource) (*tasks.Forest, error) {
	var (
		body []byte
		err  error
	)
	if src.ID != "" {
		if store == nil {
			return nil, fmt.Errorf("no trace archive available for %s", src.ID)
		}
		body, err = store.GetTraceBody(ctx, src.ID)
	} else {
		body, err = readTraceFile(src.Path, cfg.Storage.MaxTraceBytes)
	}
	if err != nil {
		return nil, err
	}

	events, err := decodeTrace(body)
	if err != nil {
		return nil, err
	}
	return b.Build(events)
}

func printAnalysisHuman(results []analysisResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		name := filepath.Base(r.Source)
		if r.Error != "" {
			fmt.Printf("== %s: error: %s\n", name, r.Error)
			continue
		}

		s := r.Summary
		fmt.Printf("== %s (%s)\n", name, r.Thread)
		fmt.Printf("Tasks:         %s (%d top-level)\n", formatNumber(int64(s.TaskCount)), s.RootCount)
		fmt.Printf("Busy:          %s\n", formatMs(s.TopLevelDuration))

		if len(s.ByCategory) > 0 {
			fmt.Println()
			fmt.Println("By category:")
			for _, row := range s.ByCategory {
				label := row.Label
				if label == "" {
					label = row.Key
				}
				fmt.Printf("  %-32s %12s\n", label, formatMs(row.SelfTime))
			}
		}

		if len(s.ByURL) > 0 {
			fmt.Println()
			fmt.Println("By URL:")
			for _, row := range s.ByURL {
				fmt.Printf("  %-60s %12s\n", row.Key, formatMs(row.SelfTime))
			}
		}
	}
}
