package reuniq

import (
	"fmt"
	"regexp"
)

// Matcher tells whether a line contains a match. *regexp.Regexp is a
// Matcher.
type Matcher interface {
	MatchString(line string) bool
}

// MatchFunc adapts a plain predicate to Matcher.
type MatchFunc func(line string) bool

func (f MatchFunc) MatchString(line string) bool { return f(line) }

// PatternError is returned by Compile for patterns that cannot be used.
type PatternError struct {
	Pattern string
	err     error
}

func (e PatternError) Error() string {
	return fmt.Sprintf("pattern '%s': %s", e.Pattern, e.err)
}

func (e PatternError) Unwrap() error { return e.err }

// Compile compiles pattern with Go's regexp syntax. The result matches a
// line if the pattern is found anywhere in it. The empty pattern matches
// every line.
func Compile(pattern string) (*regexp.Regexp, error) {
	rgx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, PatternError{Pattern: pattern, err: err}
	}
	return rgx, nil
}
