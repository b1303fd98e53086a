package tasks

import (
	"math"

	"github.com/runnerr0/mainthread/internal/taxonomy"
	"github.com/runnerr0/mainthread/internal/trace"
)

// NoParent is the Parent index of a root task.
const NoParent = -1

// Task is one reconstructed unit of main-thread work. Times are
// milliseconds relative to the first root's start once Build returns.
type Task struct {
	ID    int
	Event *trace.Event

	StartTime float64
	EndTime   float64 // NaN while a Begin task is still open
	Duration  float64
	SelfTime  float64

	// AttributableURL is "" when no ancestor (or the task itself) resolves one.
	AttributableURL string
	Group           *taxonomy.Group

	Parent   int
	Children []int
}

// IsRoot reports whether the task has no parent.
func (t *Task) IsRoot() bool {
	return t.Parent == NoParent
}

func (t *Task) resolved() bool {
	return !math.IsNaN(t.EndTime)
}

// Forest is the ordered task forest of one trace.
type Forest struct {
	tasks  []Task
	roots  []int
	events []trace.Event
	thread trace.Thread
	origin float64
}

// Len returns the number of tasks, roots included.
func (f *Forest) Len() int {
	return len(f.tasks)
}

// Task returns the task with the given ID. IDs follow creation order.
func (f *Forest) Task(id int) Task {
	t := f.tasks[id]
	t.Children = append([]int(nil), t.Children...)
	return t
}

// Tasks returns a copy of every task in creation order.
func (f *Forest) Tasks() []Task {
	out := make([]Task, len(f.tasks))
	for i := range f.tasks {
		out[i] = f.Task(i)
	}
	return out
}

// Roots returns root task IDs in the order they were opened.
func (f *Forest) Roots() []int {
	return append([]int(nil), f.roots...)
}

// Parent returns the parent ID of a task, or false for roots.
func (f *Forest) Parent(id int) (int, bool) {
	p := f.tasks[id].Parent
	return p, p != NoParent
}

// Children returns the child IDs of a task in start order.
func (f *Forest) Children(id int) []int {
	return append([]int(nil), f.tasks[id].Children...)
}

// Thread returns the primary thread the forest was built from.
func (f *Forest) Thread() trace.Thread {
	return f.thread
}

// Origin returns the trace timestamp, in microseconds, that maps to time zero.
func (f *Forest) Origin() float64 {
	return f.origin
}

// Walk visits every task in pre-order, root by root. Returning false from fn
// skips the task's descendants.
func (f *Forest) Walk(fn func(t Task, depth int) bool) {
	type frame struct {
		id    int
		depth int
	}
	var stack []frame
	for _, root := range f.roots {
		stack = append(stack[:0], frame{id: root})
		for len(stack) > 0 {
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !fn(f.Task(fr.id), fr.depth) {
				continue
			}
			children := f.tasks[fr.id].Children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: children[i], depth: fr.depth + 1})
			}
		}
	}
}

// TopLevelDuration sums the durations of all root tasks.
func (f *Forest) TopLevelDuration() float64 {
	var total float64
	for _, root := range f.roots {
		total += f.tasks[root].Duration
	}
	return total
}

// TotalSelfTime sums the self-time of every task.
func (f *Forest) TotalSelfTime() float64 {
	var total float64
	for i := range f.tasks {
		total += f.tasks[i].SelfTime
	}
	return total
}
