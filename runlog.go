package reuniq

import (
	"fmt"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// Run describes one run of consecutive matching lines.
type Run struct {
	// Line is the 1-based number of the run's first line.
	Line int
	// Len is the number of lines in the run, the kept one included.
	Len int
	// Text of the first line without line terminator.
	Text string

	islsNext *Run
}

// Suppressed returns the number of lines that were dropped from the run.
func (r *Run) Suppressed() int { return r.Len - 1 }

func (r *Run) String() string {
	return fmt.Sprintf("%d+%d [%s]", r.Line, r.Suppressed(), r.Text)
}

// ListNext to implement intrusive singly linked list
func (r *Run) ListNext() islist.Node { return r.islsNext }

// SetListNext to implement intrusive singly linked list
func (r *Run) SetListNext(n islist.Node) {
	if n == nil {
		r.islsNext = nil
	} else {
		r.islsNext = n.(*Run)
	}
}

// RunLog records runs in the order they were found. A zero value is ready
// to use.
type RunLog struct {
	runs *islist.List
	last *Run
}

func (rl *RunLog) start(line int, text string) {
	r := &Run{Line: line, Len: 1, Text: text}
	if rl.runs == nil {
		rl.runs = islist.New(r)
	} else {
		rl.runs.PushBack(r)
	}
	rl.last = r
}

func (rl *RunLog) extend() {
	if rl.last != nil {
		rl.last.Len++
	}
}

// Len returns the number of recorded runs.
func (rl *RunLog) Len() int {
	if rl.runs == nil {
		return 0
	}
	return rl.runs.Len()
}

// Pop removes the oldest run from the log and returns it. It returns nil
// if the log is empty.
func (rl *RunLog) Pop() *Run {
	if rl.Len() == 0 {
		return nil
	}
	r := rl.runs.Front().(*Run)
	rl.runs.Drop(1)
	if r == rl.last {
		rl.last = nil
	}
	return r
}

// Each calls do for each recorded run in order until do returns false.
func (rl *RunLog) Each(do func(*Run) bool) {
	n := rl.Len()
	if n == 0 {
		return
	}
	r := rl.runs.Front().(*Run)
	for i := 0; i < n && r != nil; i++ {
		if !do(r) {
			return
		}
		r = r.islsNext
	}
}

// Collapsed returns the number of runs that had at least one line dropped.
func (rl *RunLog) Collapsed() (n int) {
	rl.Each(func(r *Run) bool {
		if r.Len > 1 {
			n++
		}
		return true
	})
	return n
}
