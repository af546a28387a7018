package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/internal/configloader"
	"github.com/copperspice/doxypress-sub002/pkg/config"
)

// projectDir creates a temp directory marked as a VCS root so the upward
// config search stays inside it.
func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, nil)

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".doxyparse.yml": "parser:\n  autolink_support: false\n  markdown_support: true\nignore:\n  - \"vendor/**\"\n",
	})
	sub := filepath.Join(dir, "src", "lib")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := configloader.Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".doxyparse.yml"), result.Paths.Project)
	assert.Equal(t, []string{result.Paths.Project}, result.LoadedFrom)
	assert.False(t, result.Config.Parser.AutolinkSupport)
	assert.True(t, result.Config.Parser.MarkdownSupport)
	assert.True(t, result.Config.Parser.WarnDocError, "keys absent from the file keep their default")
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	assert.Equal(t, config.DefaultExtensions(), result.Config.Extensions)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".doxyparse.yml": "severity_default: info\nparser:\n  internal_docs: true\n",
		"custom.yaml":    "severity_default: error\n",
	})

	opts := isolated(dir)
	opts.ExplicitPath = filepath.Join(dir, "custom.yaml")

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.True(t, result.Config.Parser.InternalDocs)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".doxyparse.yml": "ignore:\n  - \"build/**\"\nextensions: [\".h\"]\n",
	})

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Format: config.FormatJSON,
		Jobs:   3,
		Strict: true,
		Ignore: []string{"*.md"},
		Parser: config.ParserConfig{DetectCodeLanguage: true},
	}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Parser.DetectCodeLanguage)
	assert.True(t, cfg.Parser.AutolinkSupport)
	assert.Equal(t, []string{"build/**", "*.md"}, cfg.Ignore)
	assert.Equal(t, []string{".h"}, cfg.Extensions)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".doxyparse.yml": "severity_default: fatal\nextensions: [\"h\"]\nparser:\n  subpage_nesting_level: -1\n",
	})

	_, err := configloader.Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid severity "fatal"`)
	assert.Contains(t, err.Error(), `extension "h" must start with a dot`)
	assert.Contains(t, err.Error(), "nesting level must be non-negative")
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{".doxyparse.yml": "parser: [unclosed\n"})

	_, err := configloader.Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := projectDir(t, map[string]string{
		".doxyparse.yml": "symbols: missing.yaml\nexample_path: [nowhere]\n",
	})

	result, err := configloader.Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `symbol file "missing.yaml" does not exist`)
	assert.Contains(t, result.Warnings[1], `example directory "nowhere" does not exist`)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := configloader.Load(ctx, isolated(projectDir(t, nil)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Environment(t *testing.T) {
	dir := projectDir(t, map[string]string{".doxyparse.yml": "parser:\n  warn_doc_error: true\n"})
	t.Setenv("DOXYPARSE_WARN_DOC_ERROR", "false")
	t.Setenv("DOXYPARSE_JOBS", "2")
	t.Setenv("DOXYPARSE_EXTENSIONS", ".h, .dox")
	t.Setenv("DOXYPARSE_FORMAT", "YAML")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Config.Parser.WarnDocError)
	assert.Equal(t, 2, result.Config.Jobs)
	assert.Equal(t, []string{".h", ".dox"}, result.Config.Extensions)
	assert.Equal(t, config.FormatYAML, result.Config.Format)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("DOXYPARSE_STRICT", "maybe")

	err := configloader.LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOXYPARSE_STRICT")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := configloader.ListEnvVars()
	assert.Contains(t, vars, "DOXYPARSE_SYMBOLS")
	assert.Contains(t, vars, "DOXYPARSE_SUBPAGE_NESTING_LEVEL")
	for name, description := range vars {
		assert.NotEmpty(t, description, name)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := projectDir(t, map[string]string{".doxyparse.yaml": "{}\n"})
	inner := filepath.Join(outer, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	found, err := configloader.FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = configloader.FindProjectConfig(context.Background(), outer)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outer, ".doxyparse.yaml"), found)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"format", func(c *config.Config) { c.Format = "sarif" }, "format"},
		{"color", func(c *config.Config) { c.Color = "sometimes" }, "color"},
		{"jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"ignore pattern", func(c *config.Config) { c.Ignore = []string{"[a-"} }, "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := configloader.Validate(cfg)
			require.False(t, result.Valid())
			assert.Equal(t, tt.field, result.Errors[0].Field)
		})
	}

	assert.True(t, configloader.Validate(config.NewConfig()).Valid())
	assert.True(t, configloader.Validate(nil).Valid())
}
