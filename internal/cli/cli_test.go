package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/internal/cli"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}

// execute runs the root command with args and returns stdout, stderr and
// the command error. A fresh config file keeps user and project files out.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "doxyparse.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("parser:\n  warn_doc_error: true\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)
	assert.Equal(t, "doxyparse", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"parse", "tree", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	require.NoError(t, err)

	for _, flag := range []string{"format", "jobs", "ignore", "ext", "symbols", "strict", "markdown", "trees"} {
		assert.NotNil(t, parseCmd.Flags().Lookup(flag), flag)
	}
	assert.NoError(t, parseCmd.Args(parseCmd, []string{"a.h", "docs/", "README.md"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "doxyparse")
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")

	stdout, _, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", stdout)
}

func TestRoot_InvalidColor(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--color", "sometimes", "version"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown color mode "sometimes"`)
}

func TestHelp(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "parse")
	assert.Contains(t, stdout, "DOXYPARSE_SYMBOLS")

	stdout, _, err = execute(t, "parse", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--symbols")
	assert.NotContains(t, stdout, "Environment:")
}

func TestParse_CleanFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "widget.h", "/** A widget. */\nclass Widget;\n")

	stdout, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
}

func TestParse_Warnings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "broken.h", "int x;\n/** <b>bold */\n")

	stdout, _, err := execute(t, "parse", path)
	require.NoError(t, err, "warnings do not fail without --strict")
	assert.Contains(t, stdout, "End of comment block while expecting command </b>")
	assert.Contains(t, stdout, "(nesting)")

	_, _, err = execute(t, "parse", "--strict", path)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.ExitParseWarnings, exitErr.Code)
}

func TestParse_SeverityOverride(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "broken.h", "/** <b>bold */\n")

	_, _, err := execute(t, "parse", "--severity", "error", path)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.ExitParseErrors, exitErr.Code)
}

func TestParse_JSONWithTrees(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "widget.h", "/** A widget. */\nclass Widget;\n")

	stdout, _, err := execute(t, "parse", "--format", "json", "--trees", path)
	require.NoError(t, err)

	var doc struct {
		Files []struct {
			Blocks []struct {
				Line int            `json:"line"`
				Tree map[string]any `json:"tree"`
			} `json:"blocks"`
		} `json:"files"`
		Summary struct {
			FilesChecked int `json:"filesChecked"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Blocks, 1)
	assert.Equal(t, 1, doc.Files[0].Blocks[0].Line)
	assert.Equal(t, "Root", doc.Files[0].Blocks[0].Tree["kind"])
}

func TestParse_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "parse", "--format", "sarif", t.TempDir())
	require.Error(t, err)
	assert.False(t, errors.Is(err, cli.ErrIssuesFound))
	assert.Contains(t, err.Error(), `invalid format "sarif"`)
}

func TestParse_SymbolFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	symbols := writeFile(t, dir, "symbols.yaml",
		"entities:\n  - name: Widget\n    kind: class\n    file: classWidget\n")
	path := writeFile(t, dir, "page.dox", "/** See \\ref Widget for details. */\n")

	stdout, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Unable to resolve reference to 'Widget' for \\ref command")

	stdout, _, err = execute(t, "parse", "--symbols", symbols, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")

	_, _, err = execute(t, "parse", "--symbols", filepath.Join(dir, "missing.yaml"), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load symbols")
}

func TestExitCodeFromResult_Nil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}
