package tasks

import (
	"github.com/runnerr0/mainthread/internal/taxonomy"
)

// aggregate sets Duration and SelfTime with one post-order walk per root.
// Walks start only at roots, so each task is computed exactly once.
func (f *Forest) aggregate() {
	type frame struct {
		id   int
		next int
	}
	var stack []frame

	for _, root := range f.roots {
		stack = append(stack[:0], frame{id: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			t := &f.tasks[top.id]

			if top.next < len(t.Children) {
				child := t.Children[top.next]
				top.next++
				stack = append(stack, frame{id: child})
				continue
			}

			var childTime float64
			for _, c := range t.Children {
				childTime += f.tasks[c].Duration
			}
			t.Duration = t.EndTime - t.StartTime
			t.SelfTime = t.Duration - childTime
			stack = stack[:len(stack)-1]
		}
	}
}

// preorder visits every task with its parent already visited.
func (f *Forest) preorder(visit func(t *Task)) {
	var stack []int
	for _, root := range f.roots {
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			t := &f.tasks[id]
			visit(t)
			for i := len(t.Children) - 1; i >= 0; i-- {
				stack = append(stack, t.Children[i])
			}
		}
	}
}

// attribute resolves AttributableURL. The nearest ancestor with a URL wins
// over the task's own candidate.
func (f *Forest) attribute() {
	f.preorder(func(t *Task) {
		if t.Parent != NoParent {
			if url := f.tasks[t.Parent].AttributableURL; url != "" {
				t.AttributableURL = url
				return
			}
		}
		t.AttributableURL = t.Event.CandidateURL()
	})
}

// classify resolves Group with the same precedence as attribute. Other is
// the unresolved value: it never overrides a descendant's own group.
func (f *Forest) classify(tx *taxonomy.Taxonomy) {
	other := tx.Other()
	f.preorder(func(t *Task) {
		if t.Parent != NoParent {
			if g := f.tasks[t.Parent].Group; g != other {
				t.Group = g
				return
			}
		}
		if g, ok := tx.Lookup(t.Event.Name); ok {
			t.Group = g
			return
		}
		t.Group = other
	})
}
