package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/retrace"
)

const appLog = "error: disk full\nall good\nERROR again\n"

// useTestFs swaps the package filesystem for an in-memory one seeded with
// the given files, restoring the original when the test ends.
func useTestFs(t *testing.T, files map[string]string) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(mem, name, []byte(body), 0o644))
	}
	old := fs
	fs = mem
	t.Cleanup(func() { fs = old })
}

func runMatchCapture(t *testing.T, args []string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	matchCmd.SetOut(&buf)
	defer matchCmd.SetOut(nil)
	err := runMatch(matchCmd, args)
	return buf.String(), err
}

func TestPrintMatches(t *testing.T) {
	re := retrace.MustCompile(`(l+)o`)
	var buf bytes.Buffer

	printMatches(&buf, re, "hello yellow")

	want := "=== Matches ===\n" +
		"1) [2,5]: \"llo\"\n" +
		"2) [8,11]: \"llo\"\n" +
		"===== Groups ======\n" +
		"1) \"ll\"\n" +
		"===================\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintMatchesNoGroups(t *testing.T) {
	re := retrace.MustCompile(`l+o`)
	var buf bytes.Buffer

	printMatches(&buf, re, "hello yellow")

	want := "=== Matches ===\n" +
		"1) [2,5]: \"llo\"\n" +
		"2) [8,11]: \"llo\"\n" +
		"===================\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintMatchesNoMatch(t *testing.T) {
	re := retrace.MustCompile(`[0-9]+`)
	var buf bytes.Buffer

	printMatches(&buf, re, "hello")

	assert.Equal(t, "No matches\n", buf.String())
}

func TestMatchFile(t *testing.T) {
	useTestFs(t, map[string]string{"app.log": appLog})

	out, err := runMatchCapture(t, []string{`er+or`, "app.log"})

	require.NoError(t, err)
	assert.Equal(t, "1:error: disk full\n", out)
}

func TestMatchFileNoMatch(t *testing.T) {
	useTestFs(t, map[string]string{"app.log": appLog})

	out, err := runMatchCapture(t, []string{`zzz`, "app.log"})

	require.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)
}

func TestMatchIgnoreCase(t *testing.T) {
	useTestFs(t, map[string]string{"app.log": appLog})
	viper.Set("ignore-case", true)
	t.Cleanup(func() { viper.Set("ignore-case", false) })

	out, err := runMatchCapture(t, []string{`er+or`, "app.log"})

	require.NoError(t, err)
	assert.Equal(t, "1:error: disk full\n3:ERROR again\n", out)
}

func TestMatchSpans(t *testing.T) {
	useTestFs(t, map[string]string{"app.log": appLog})
	showSpans = true
	t.Cleanup(func() { showSpans = false })

	out, err := runMatchCapture(t, []string{`er+or`, "app.log"})

	require.NoError(t, err)
	assert.Equal(t, "1:error: disk full\n  [0,5]: \"error\"\n", out)
}

func TestMatchStdin(t *testing.T) {
	matchCmd.SetIn(strings.NewReader("one\ntwo\nthree\n"))
	defer matchCmd.SetIn(nil)

	out, err := runMatchCapture(t, []string{`o`})

	require.NoError(t, err)
	assert.Equal(t, "1:one\n2:two\n", out)
}

func TestMatchMissingFile(t *testing.T) {
	useTestFs(t, map[string]string{})

	_, err := runMatchCapture(t, []string{`a`, "missing.log"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, errNoMatch)
}

func TestMatchBadPattern(t *testing.T) {
	_, err := runMatchCapture(t, []string{`(abc`})

	require.Error(t, err)
	assert.NotErrorIs(t, err, errNoMatch)
}
