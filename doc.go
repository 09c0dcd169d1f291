/*
Package reuniq collapses runs of lines that match a regular expression.

Lines are read in order. A line that does not match the pattern is always
passed on. A line that matches is passed on only if it starts a run, i.e.
the line right before it did not match. All further lines of the same run
are dropped. E.g. with the pattern "ERROR" the text

	a
	ERROR 1
	ERROR 2
	b
	ERROR 3

becomes

	a
	ERROR 1
	b
	ERROR 3

"ERROR 3" is kept because "b" separates it from the first run. Matching
lines that are not adjacent are never deduplicated.

A match is found anywhere in the line, as with regexp.MatchString. Use
anchors like '^' and '$' to match whole lines. The empty pattern matches
every line. Lines are matched without their terminator, so a pattern like
`\n` never matches and `\s` does not match on the newline alone.

# Filtering

The algorithm itself is the Collapser. It is fed one line at a time and
returns a Verdict for each line. Filter wraps a Collapser around an
iter.Seq[string] and yields the kept lines lazily.

For text streams use Uniq. It keeps the line terminators of the input,
counts Stats for each pass and can record each run in a RunLog.
*/
package reuniq
