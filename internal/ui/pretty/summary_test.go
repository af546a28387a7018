package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copperspice/doxypress-sub002/internal/ui/pretty"
	"github.com/copperspice/doxypress-sub002/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean run",
			stats: runner.Stats{FilesProcessed: 3, BlocksParsed: 7},
			want:  "No issues found (3 files checked, 7 blocks parsed)\n",
		},
		{
			name:  "single file and block",
			stats: runner.Stats{FilesProcessed: 1, BlocksParsed: 1},
			want:  "No issues found (1 file checked, 1 block parsed)\n",
		},
		{
			name: "issues",
			stats: runner.Stats{
				FilesProcessed:        4,
				FilesWithIssues:       2,
				BlocksParsed:          9,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 4},
			},
			want: "5 issues (1 error, 4 warnings) in 2 files, 9 blocks parsed\n",
		},
		{
			name: "unreadable files",
			stats: runner.Stats{
				FilesWithIssues:       1,
				FilesErrored:          1,
				BlocksParsed:          2,
				DiagnosticsTotal:      1,
				DiagnosticsBySeverity: map[string]int{"warning": 1},
			},
			want: "1 issue (1 warning) in 1 file, 2 blocks parsed, 1 file unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.NewStyles(false).FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:        10,
		FilesWithIssues:       3,
		BlocksParsed:          40,
		DiagnosticsTotal:      15,
		DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
	})
	assert.Contains(t, result, "Files parsed:      10")
	assert.Contains(t, result, "Comment blocks:    40")
	assert.Contains(t, result, "Files with issues: 3")
	assert.Contains(t, result, "Errors:          5")
	assert.Contains(t, result, "Warnings:        10")
	assert.Contains(t, result, "Parse failed with errors")

	clean := styles.FormatSummary(runner.Stats{FilesProcessed: 5, DiagnosticsBySeverity: map[string]int{}})
	assert.Contains(t, clean, "Parse passed")
	assert.NotContains(t, clean, "Files with issues:")
}
