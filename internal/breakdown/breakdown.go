// Package breakdown summarizes a task forest the way boot-up-time style
// audits consume it: self-time grouped by attributable URL and by category.
package breakdown

import (
	"sort"

	"github.com/runnerr0/mainthread/internal/tasks"
	"github.com/runnerr0/mainthread/internal/taxonomy"
)

// UnattributedKey groups tasks with no attributable URL.
const UnattributedKey = "Other"

// Row is one group's share of main-thread time, in milliseconds.
type Row struct {
	Key      string  `json:"key"`
	Label    string  `json:"label,omitempty"`
	SelfTime float64 `json:"self_time_ms"`
	Tasks    int     `json:"tasks"`

	// ByGroup splits a URL row's self-time by category ID.
	ByGroup map[taxonomy.GroupID]float64 `json:"by_group,omitempty"`
}

// Summary is the combined breakdown of one forest.
type Summary struct {
	TaskCount        int     `json:"task_count"`
	RootCount        int     `json:"root_count"`
	TotalSelfTime    float64 `json:"total_self_time_ms"`
	TopLevelDuration float64 `json:"top_level_duration_ms"`
	ByURL            []Row   `json:"by_url"`
	ByCategory       []Row   `json:"by_category"`
}

// Summarize computes both breakdowns and the forest totals.
func Summarize(f *tasks.Forest) Summary {
	return Summary{
		TaskCount:        f.Len(),
		RootCount:        len(f.Roots()),
		TotalSelfTime:    f.TotalSelfTime(),
		TopLevelDuration: f.TopLevelDuration(),
		ByURL:            ByURL(f),
		ByCategory:       ByCategory(f),
	}
}

// ByURL sums self-time per attributable URL, largest first.
func ByURL(f *tasks.Forest) []Row {
	rows := map[string]*Row{}
	for _, t := range f.Tasks() {
		key := t.AttributableURL
		if key == "" {
			key = UnattributedKey
		}
		row, ok := rows[key]
		if !ok {
			row = &Row{Key: key, ByGroup: map[taxonomy.GroupID]float64{}}
			rows[key] = row
		}
		row.SelfTime += t.SelfTime
		row.Tasks++
		if t.Group != nil {
			row.ByGroup[t.Group.ID] += t.SelfTime
		}
	}
	return sorted(rows)
}

// ByCategory sums self-time per category group, largest first.
func ByCategory(f *tasks.Forest) []Row {
	rows := map[string]*Row{}
	for _, t := range f.Tasks() {
		if t.Group == nil {
			continue
		}
		key := string(t.Group.ID)
		row, ok := rows[key]
		if !ok {
			row = &Row{Key: key, Label: t.Group.Label}
			rows[key] = row
		}
		row.SelfTime += t.SelfTime
		row.Tasks++
	}
	return sorted(rows)
}

func sorted(rows map[string]*Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SelfTime != out[j].SelfTime {
			return out[i].SelfTime > out[j].SelfTime
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Top returns at most n rows; n <= 0 returns all of them.
func Top(rows []Row, n int) []Row {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}
