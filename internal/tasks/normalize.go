package tasks

import "math"

const microsPerMilli = 1000

// normalize rebases every time to the first root's original start and
// converts microseconds to milliseconds. A non-finite self-time afterwards
// means the trace was malformed.
func (f *Forest) normalize() error {
	var t0 float64
	if len(f.roots) > 0 {
		t0 = f.tasks[f.roots[0]].StartTime
	}
	f.origin = t0

	for i := range f.tasks {
		t := &f.tasks[i]
		t.StartTime = (t.StartTime - t0) / microsPerMilli
		t.EndTime = (t.EndTime - t0) / microsPerMilli
		t.Duration /= microsPerMilli
		t.SelfTime /= microsPerMilli
	}

	for i := range f.tasks {
		t := &f.tasks[i]
		if math.IsNaN(t.SelfTime) || math.IsInf(t.SelfTime, 0) {
			return traceErrorf(ErrInvalidTiming,
				"task %d %q (ph=%s, ts=%v) has self-time %v",
				t.ID, t.Event.Name, t.Event.Phase, t.Event.TS, t.SelfTime)
		}
	}
	return nil
}
