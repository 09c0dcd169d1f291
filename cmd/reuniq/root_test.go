package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalqb/reuniq"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestRoot_stdin(t *testing.T) {
	out, _, err := execute(t, "a\nERROR 1\nERROR 2\nb\nERROR 3\n", "ERROR")
	require.NoError(t, err)
	assert.Equal(t, "a\nERROR 1\nb\nERROR 3\n", out)
}

func TestRoot_files(t *testing.T) {
	f1 := writeFile(t, "f1.txt", "X\nX\n")
	f2 := writeFile(t, "f2.txt", "X\na\n")
	out, _, err := execute(t, "", "X", f1, f2)
	require.NoError(t, err)
	assert.Equal(t, "X\nX\na\n", out, "each file is a pass of its own")
}

func TestRoot_patternFlag(t *testing.T) {
	f := writeFile(t, "X", "X\nX\n")
	out, _, err := execute(t, "", "-e", "X", f)
	require.NoError(t, err)
	assert.Equal(t, "X\n", out)
}

func TestRoot_patternEnv(t *testing.T) {
	t.Setenv("REUNIQ_PATTERN", "^#")
	out, _, err := execute(t, "# a\n# b\nc\n")
	require.NoError(t, err)
	assert.Equal(t, "# a\nc\n", out)
}

func TestRoot_outputFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")
	out, _, err := execute(t, "X\nX\ny", "-o", dst, "X")
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "X\ny", string(data))
}

func TestRoot_emptyPattern(t *testing.T) {
	out, _, err := execute(t, "a\nb\nc\n", "")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out, "the empty pattern matches every line")

	f := writeFile(t, "in.txt", "x\ny\n")
	out, _, err = execute(t, "", "-e", "", f)
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)
}

func TestRoot_missingInputKeepsOutput(t *testing.T) {
	dst := writeFile(t, "out.txt", "previous\n")
	_, _, err := execute(t, "", "-o", dst, "X", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestRoot_longLine(t *testing.T) {
	long := strings.Repeat("b", 100*1024)
	out, _, err := execute(t, "X\nX\n"+long+"\n", "X")
	require.NoError(t, err)
	assert.Equal(t, "X\n"+long+"\n", out)
}

func TestRoot_report(t *testing.T) {
	_, stderr, err := execute(t, "a\nX1\nX2\nX3\nb\nX4\n", "--stats", "--runs", "X")
	require.NoError(t, err)
	assert.Contains(t, stderr, "stdin: read 6, wrote 4, 4 matching in 2 runs, 2 suppressed")
	assert.Contains(t, stderr, "stdin:2+2 [X1]")
	assert.NotContains(t, stderr, "[X4]")
}

func TestRoot_configFile(t *testing.T) {
	cfg := writeFile(t, "reuniq.yaml", "pattern: \"^-\"\nstats: true\n")
	out, stderr, err := execute(t, "-1\n-2\n+\n", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "-1\n+\n", out)
	assert.Contains(t, stderr, "stdin: read 3")
}

func TestRoot_debugLog(t *testing.T) {
	_, stderr, err := execute(t, "X\nX\n", "--log-level", "debug", "X")
	require.NoError(t, err)
	assert.Contains(t, stderr, "suppress")
}

func TestRoot_errors(t *testing.T) {
	t.Run("missing pattern", func(t *testing.T) {
		_, _, err := execute(t, "")
		assert.Error(t, err)
	})
	t.Run("invalid pattern", func(t *testing.T) {
		out, _, err := execute(t, "a\n", "a(")
		var perr reuniq.PatternError
		assert.ErrorAs(t, err, &perr)
		assert.Empty(t, out, "nothing is filtered")
	})
	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "X", filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad log level", func(t *testing.T) {
		_, _, err := execute(t, "", "--log-level", "loud", "X")
		assert.Error(t, err)
	})
}
