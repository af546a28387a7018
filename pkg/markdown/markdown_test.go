package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copperspice/doxypress-sub002/pkg/markdown"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "emphasis",
			input: "Some *word* here.",
			want:  "Some <em>word</em> here.",
		},
		{
			name:  "strong",
			input: "A **bold** claim.",
			want:  "A <b>bold</b> claim.",
		},
		{
			name:  "strikethrough",
			input: "Was ~~wrong~~.",
			want:  "Was <del>wrong</del>.",
		},
		{
			name:  "code span",
			input: "Call `run()` first.",
			want:  "Call <tt>run()</tt> first.",
		},
		{
			name:  "double backtick code span",
			input: "Use `` a`b `` literally.",
			want:  "Use <tt>a`b</tt> literally.",
		},
		{
			name:  "inline link",
			input: "See [the docs](https://example.com/x) now.",
			want:  `See <a href="https://example.com/x">the docs</a> now.`,
		},
		{
			name:  "atx heading",
			input: "## Usage\n\nText.",
			want:  "<h2>Usage</h2>\n\nText.",
		},
		{
			name:  "commands untouched",
			input: "\\brief Short.\n\\param x the value",
			want:  "\\brief Short.\n\\param x the value",
		},
		{
			name:  "reference link untouched",
			input: "See [docs][ref].",
			want:  "See [docs][ref].",
		},
		{
			name:  "code block body untouched",
			input: "\\code\nint *a* = **b**;\n\\endcode",
			want:  "\\code\nint *a* = **b**;\n\\endcode",
		},
		{
			name:  "verbatim heading untouched",
			input: "\\verbatim\n# not a heading `x`\n\\endverbatim",
			want:  "\\verbatim\n# not a heading `x`\n\\endverbatim",
		},
		{
			name:  "inline formula untouched",
			input: "\\f$ a*b*c \\f$",
			want:  "\\f$ a*b*c \\f$",
		},
		{
			name:  "display formula untouched",
			input: "\\f[ x_1 *y* \\f]",
			want:  "\\f[ x_1 *y* \\f]",
		},
		{
			name:  "at-sign raw block untouched",
			input: "@htmlonly <i>*x*</i> @endhtmlonly",
			want:  "@htmlonly <i>*x*</i> @endhtmlonly",
		},
		{
			name:  "unclosed raw block runs to the end",
			input: "\\code\n`x` and *y*",
			want:  "\\code\n`x` and *y*",
		},
		{
			name:  "markdown around a formula",
			input: "*a* then \\f$ x*y*z \\f$ then `b`",
			want:  "<em>a</em> then \\f$ x*y*z \\f$ then <tt>b</tt>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, markdown.Preprocess(tt.input))
		})
	}
}

func TestPreprocessor_Reusable(t *testing.T) {
	t.Parallel()

	p := markdown.New()
	assert.Equal(t, "<em>a</em>", p.Preprocess("*a*"))
	assert.Equal(t, "<b>b</b>", p.Preprocess("**b**"))
}
