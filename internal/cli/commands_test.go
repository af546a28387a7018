package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const widgetHeader = "/** A widget. */\nclass Widget;\n/// Draws <b>it</b>.\nvoid draw();\n"

func TestTree_AllBlocks(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "widget.h", widgetHeader)

	stdout, _, err := execute(t, "tree", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path+":1\n")
	assert.Contains(t, stdout, path+":3\n")
	assert.Contains(t, stdout, "Root")
	assert.Contains(t, stdout, `"Draws"`)
}

func TestTree_SingleBlockYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "widget.h", widgetHeader)

	stdout, _, err := execute(t, "tree", "--block", "2", "--format", "yaml", path)
	require.NoError(t, err)

	var tree struct {
		Kind string `yaml:"kind"`
		Line int    `yaml:"line"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "Root", tree.Kind)
	assert.Equal(t, 3, tree.Line)
	assert.NotContains(t, stdout, "widget")
}

func TestTree_Output(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "widget.h", widgetHeader)
	out := filepath.Join(dir, "tree.json")

	stdout, _, err := execute(t, "tree", "--format", "json", "--block", "1", "-o", out, path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"kind": "Root"`)
}

func TestTree_LogsDiagnostics(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "broken.h", "/** <b>bold */\n")

	_, stderr, err := execute(t, "tree", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "End of comment block while expecting command </b>")
}

func TestTree_Errors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "widget.h", widgetHeader)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"block out of range", []string{"tree", "--block", "3", path}, "block 3 out of range"},
		{"bad format", []string{"tree", "--format", "summary", path}, `invalid tree format "summary"`},
		{"missing file", []string{"tree", path + ".gone"}, "parse " + path + ".gone"},
		{"no argument", []string{"tree"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "doxyparse.yml")

	_, _, err := execute(t, "init", "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# doxyparse configuration")
	assert.Contains(t, string(content), "autolink_support")

	_, _, err = execute(t, "init", "--output", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(out, []byte("# edited\n"), 0o644))
	_, _, err = execute(t, "init", "--force", "--full", "--output", out)
	require.NoError(t, err)

	backup, err := os.ReadFile(out + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(backup))
}

func TestInit_JSON(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "doxyparse.json")

	_, _, err := execute(t, "init", "--format", "json", "--output", out)
	require.NoError(t, err)

	var doc map[string]any
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(content, &doc))
	assert.Contains(t, doc, "parser")

	_, _, err = execute(t, "init", "--format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "toml"`)
}
