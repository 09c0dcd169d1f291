package reuniq

import (
	"iter"
	"slices"
)

// Verdict tells what the Collapser decided about a line.
type Verdict int

const (
	// Pass marks a line that does not match. It is always kept.
	Pass Verdict = iota
	// First marks a matching line that starts a new run. It is kept.
	First
	// Drop marks a matching line that continues the current run.
	Drop
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case First:
		return "first"
	case Drop:
		return "drop"
	}
	return "invalid verdict"
}

// Keep reports whether a line with verdict v is passed on.
func (v Verdict) Keep() bool { return v != Drop }

// Collapser decides line by line whether a line is kept. A zero value with
// Matches set is ready to use. It must not be used concurrently.
type Collapser struct {
	// Matches reports whether a line is part of a run. It is called exactly
	// once per line.
	Matches func(line string) bool

	idx     int
	last    int
	matched bool // there is a matching line at index last
}

// NewCollapser returns a Collapser that uses m to recognize run lines.
func NewCollapser(m Matcher) *Collapser {
	return &Collapser{Matches: m.MatchString}
}

// Step consumes the next line and returns the verdict for it.
func (c *Collapser) Step(line string) Verdict {
	i := c.idx
	c.idx++
	if !c.Matches(line) {
		return Pass
	}
	adjacent := c.matched && i-c.last == 1
	c.last, c.matched = i, true
	if adjacent {
		return Drop
	}
	return First
}

// Keep consumes the next line and reports whether it has to be passed on.
func (c *Collapser) Keep(line string) bool { return c.Step(line).Keep() }

// Index returns the number of lines consumed since the last Reset.
func (c *Collapser) Index() int { return c.idx }

// Reset clears all state so that c can be used for another pass.
func (c *Collapser) Reset() {
	c.idx, c.last, c.matched = 0, 0, false
}

// Filter returns lines with each run of consecutive lines that satisfy
// matches reduced to the first line of the run. Input is pulled only while
// the returned sequence is consumed.
func Filter(lines iter.Seq[string], matches func(string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		c := Collapser{Matches: matches}
		for line := range lines {
			if c.Keep(line) && !yield(line) {
				return
			}
		}
	}
}

// Lines is Filter on a slice.
func Lines(lines []string, m Matcher) []string {
	return slices.Collect(Filter(slices.Values(lines), m.MatchString))
}
