package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copperspice/doxypress-sub002/internal/ui/pretty"
	"github.com/copperspice/doxypress-sub002/pkg/config"
	"github.com/copperspice/doxypress-sub002/pkg/diag"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	d := diag.New(diag.CategoryNesting, "widget.h", 12,
		"End of comment block while expecting command </%s>", "b").Build()

	got := styles.FormatDiagnostic(d, "")
	assert.Equal(t,
		"  widget.h:12  warning  End of comment block while expecting command </b>  (nesting)\n",
		got)
}

func TestFormatDiagnostic_SourceLineAndCandidates(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	d := diag.New(diag.CategoryAmbiguity, "a.h", 3, "included file name util.h is ambiguous").
		WithSeverity(config.SeverityError).
		WithCandidates("src/util.h", "lib/util.h").
		Build()

	got := styles.FormatDiagnostic(d, " * \\include util.h\n")
	assert.Contains(t, got, "  a.h:3  error  included file name util.h is ambiguous  (ambiguity)\n")
	assert.Contains(t, got, "        * \\include util.h\n")
	assert.Contains(t, got, "    candidate: src/util.h\n")
	assert.Contains(t, got, "    candidate: lib/util.h\n")
}

func TestFormatDiagnostic_NoLine(t *testing.T) {
	t.Parallel()

	d := diag.Diagnostic{File: "a.h", Message: "m", Category: diag.CategoryGrammar}
	got := pretty.NewStyles(false).FormatDiagnostic(d, "")
	assert.Equal(t, "  a.h  warning  m  (grammar)\n", got)
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "warning", styles.FormatSeverity(""))
	assert.Equal(t, "info", styles.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "fatal", styles.FormatSeverity("fatal"))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.h", styles.FormatFileHeader("a.h", 0))
	assert.Equal(t, "a.h (1 issue)", styles.FormatFileHeader("a.h", 1))
	assert.Equal(t, "a.h (4 issues)", styles.FormatFileHeader("a.h", 4))
}
