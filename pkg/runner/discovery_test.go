package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

// writeTree creates files (relative to dir) with the given contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relPaths strips dir from every discovered path.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"widget.h": "/** Widget. */"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{filepath.Join(dir, "widget.h")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "widget.h")}, files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md":       "# Title",
		"src/widget.cpp":  "",
		"src/widget.h":    "",
		"docs/intro.dox":  "",
		"tools/build.go":  "",
		"assets/logo.png": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"README.md",
		"docs/intro.dox",
		"src/widget.cpp",
		"src/widget.h",
	}, relPaths(t, dir, files))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.h": "", "b.hh": "", "c.HH": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
		Extensions: []string{".hh"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.hh", "c.HH"}, relPaths(t, dir, files))
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/a.h":            "",
		"src/detail/b.h":     "",
		"third_party/c.h":    "",
		"third_party/x/d.h":  "",
		"docs/guide.md":      "",
		"docs/internal/x.md": "",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "exclude directory",
			exclude: []string{"third_party/**"},
			want:    []string{"docs/guide.md", "docs/internal/x.md", "src/a.h", "src/detail/b.h"},
		},
		{
			name:    "exclude base name pattern",
			exclude: []string{"*.md"},
			want:    []string{"src/a.h", "src/detail/b.h", "third_party/c.h", "third_party/x/d.h"},
		},
		{
			name:    "exclude nested directory anywhere",
			exclude: []string{"**/internal/**", "**/detail/**"},
			want:    []string{"docs/guide.md", "src/a.h", "third_party/c.h", "third_party/x/d.h"},
		},
		{
			name:    "include only",
			include: []string{"src/**/*.h"},
			want:    []string{"src/a.h", "src/detail/b.h"},
		},
		{
			name:    "include and exclude",
			include: []string{"**/*.h"},
			exclude: []string{"third_party/**"},
			want:    []string{"src/a.h", "src/detail/b.h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				Paths:        []string{dir},
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_HiddenEntriesSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.h":          "",
		".hidden.h":    "",
		".git/HEAD.md": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{Paths: []string{dir}, WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.h"}, relPaths(t, dir, files))
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/a.h": "", "src/b.h": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"src", "src/a.h", "./src"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.h", "src/b.h"}, relPaths(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat missing")
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.h": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{Paths: []string{dir}, WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.h": ""})
	writeTree(t, outside, map[string]string{"linked.h": ""})

	link := filepath.Join(dir, "vendor")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{Paths: []string{dir}, WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.h")}, files)

	files, err = runner.Discover(context.Background(), runner.Options{
		Paths:          []string{dir},
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)

	target, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.h"), filepath.Join(target, "linked.h")}, files)
}
