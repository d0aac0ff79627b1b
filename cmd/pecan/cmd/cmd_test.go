package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const quietConfig = `
[output]
color = "never"
show_timing = false
`

// execute runs the root command with fresh flag values and captured output.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	if os.Getenv("PECAN_CONFIG") == "" {
		t.Setenv("PECAN_CONFIG", writeFile(t, "pecan.toml", quietConfig))
	}

	cfgFile, verbose, noColor = "", false, false
	parseExprOnly, parseQuiet = false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	color.NoColor = true
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "main.pc", "let foo: I64 = 42;\nlet mut i: I64 = 0;\n")

	out, errOut, err := execute(t, "", "parse", path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "let foo: I64 = 42;")
	assert.Contains(t, out, "let mut i: I64 = 0;")
	assert.NotContains(t, out, "Successfully parsed")
}

func TestParseReportsDiagnostic(t *testing.T) {
	path := writeFile(t, "broken.pc", "let foo:")

	out, errOut, err := execute(t, "", "parse", path)
	require.Error(t, err)
	assert.True(t, isReported(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "error[E0101]: unexpected end of input, expected type")
	assert.Contains(t, errOut, "--> "+path+":1:9")
}

func TestParseExpressionFromStdin(t *testing.T) {
	out, _, err := execute(t, "1 + 2 * 3", "parse", "--expr")
	require.NoError(t, err)
	assert.Equal(t, "(1 + (2 * 3))\n", out)
}

func TestParseQuietWithTiming(t *testing.T) {
	t.Setenv("PECAN_CONFIG", writeFile(t, "timing.toml", "[output]\nshow_timing = true\n"))
	path := writeFile(t, "ok.pc", "fn main() {}\n")

	out, _, err := execute(t, "", "parse", "--quiet", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "fn main")
	assert.Contains(t, out, "Successfully parsed "+path+" in ")
}

func TestParseCountsFailures(t *testing.T) {
	good := writeFile(t, "good.pc", "let a: I64 = 1;")
	bad := writeFile(t, "bad.pc", "let b: I64 = 2asd;")

	out, errOut, err := execute(t, "", "parse", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 input(s) failed to parse", err.Error())
	assert.Contains(t, out, "let a: I64 = 1;")
	assert.Contains(t, errOut, "error[E0102]")
}

func TestParseMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pc")

	_, errOut, err := execute(t, "", "parse", missing)
	require.Error(t, err)
	assert.Contains(t, errOut, "error[E0900]: cannot read "+missing)
}

func TestTokens(t *testing.T) {
	out, _, err := execute(t, "a != b", "tokens")
	require.NoError(t, err)
	assert.Equal(t, "1:1 IDENT a\n1:3 != !=\n1:6 IDENT b\n", out)
}

func TestTokensStopAtMalformedLiteral(t *testing.T) {
	path := writeFile(t, "lit.pc", "let x = 0b102;")

	out, errOut, err := execute(t, "", "tokens", path)
	require.Error(t, err)
	assert.Equal(t, "1:1 let let\n1:5 IDENT x\n1:7 = =\n", out)
	assert.Contains(t, errOut, "error[E0102]")
	assert.Contains(t, errOut, path+":1:9")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pecan v"+Version)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "none.toml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestNoColorFlagWins(t *testing.T) {
	t.Setenv("PECAN_CONFIG", writeFile(t, "color.toml", "[output]\ncolor = \"always\"\nshow_timing = false\n"))

	rootCmd.SetArgs([]string{"--no-color", "version"})
	cfgFile, verbose, noColor = "", false, false
	rootCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, color.NoColor)
}

func TestRepl(t *testing.T) {
	out, _, err := execute(t, "1 + 1\n:quit\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the pecan REPL")
	assert.Contains(t, out, "(1 + 1)")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.5μs"},
		{2500 * time.Microsecond, "2.5ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1.50min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}
