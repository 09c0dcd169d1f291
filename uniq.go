package reuniq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SuppressFunc is called for each line that Uniq drops. lineNo is 1-based.
type SuppressFunc func(lineNo int, line string)

var (
	ErrNoMatcher   = errors.New("no matcher")
	ErrLineTooLong = errors.New("line too long")
)

// Uniq filters text streams line by line. Line terminators ("\n" or "\r\n")
// are written exactly as read, a missing terminator on the last line stays
// missing. Lines are matched without their terminator, so patterns like
// `\s$` or `\n` never see the newline. A Uniq can be reused for more than
// one pass but must not be used concurrently.
type Uniq struct {
	Matcher Matcher
	// OnSuppress is called for each dropped line, if set.
	OnSuppress SuppressFunc
	// Runs records each run found, if set.
	Runs *RunLog
	// MaxLineLen limits the length of a single input line without its
	// terminator. If MaxLineLen is 0, lines can be of any length.
	MaxLineLen int
}

// Stats counts what happened during one pass.
type Stats struct {
	Read, Written int
	Matched       int
	Runs          int
}

// Suppressed returns the number of dropped lines.
func (s Stats) Suppressed() int { return s.Read - s.Written }

func (s Stats) String() string {
	return fmt.Sprintf("read %d, wrote %d, %d matching in %d runs, %d suppressed",
		s.Read, s.Written, s.Matched, s.Runs, s.Suppressed())
}

type ReadError struct {
	Line int
	err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read %d:%s", e.Line, e.err)
}

func (e ReadError) Unwrap() error { return e.err }

type WriteError struct {
	Line int
	err  error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("write %d:%s", e.Line, e.err)
}

func (e WriteError) Unwrap() error { return e.err }

// Text reads lines from r and writes the kept ones to w. It neither closes
// nor flushes w.
func (u *Uniq) Text(w io.Writer, r io.Reader) (stats Stats, err error) {
	if u.Matcher == nil {
		return stats, ErrNoMatcher
	}
	lrd := lineReader{rd: bufio.NewReader(r), max: u.MaxLineLen}
	clps := NewCollapser(u.Matcher)
	for {
		line, sep, err := lrd.next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		} else if err != nil {
			return stats, ReadError{Line: stats.Read + 1, err: err}
		}
		stats.Read++
		text := string(line)
		switch clps.Step(text) {
		case Drop:
			stats.Matched++
			if u.Runs != nil {
				u.Runs.extend()
			}
			if u.OnSuppress != nil {
				u.OnSuppress(stats.Read, text)
			}
			continue
		case First:
			stats.Matched++
			stats.Runs++
			if u.Runs != nil {
				u.Runs.start(stats.Read, text)
			}
		}
		if _, err = w.Write(line); err != nil {
			return stats, WriteError{Line: stats.Read, err: err}
		}
		if _, err = w.Write(sep); err != nil {
			return stats, WriteError{Line: stats.Read, err: err}
		}
		stats.Written++
	}
}

// Strings filters the lines of text.
func (u *Uniq) Strings(text string) (string, Stats, error) {
	var sb strings.Builder
	stats, err := u.Text(&sb, strings.NewReader(text))
	return sb.String(), stats, err
}

// lineReader splits input into lines of any length, or up to max bytes
// without terminator if max > 0.
type lineReader struct {
	rd  *bufio.Reader
	max int
	buf []byte
}

// next returns the text of the next line and its terminator separately.
// Both are only valid until the next call. After the last line next
// returns io.EOF.
func (lr *lineReader) next() (text, sep []byte, err error) {
	lr.buf = lr.buf[:0]
	for {
		frag, err := lr.rd.ReadSlice('\n')
		lr.buf = append(lr.buf, frag...)
		if lr.max > 0 && len(lr.buf) > lr.max+2 {
			return nil, nil, ErrLineTooLong
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || len(lr.buf) == 0) {
			return nil, nil, err
		}
		break
	}
	text = lr.buf
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	if lr.max > 0 && len(text) > lr.max {
		return nil, nil, ErrLineTooLong
	}
	return text, lr.buf[len(text):], nil
}
