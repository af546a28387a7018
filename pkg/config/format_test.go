package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"empty defaults to text", "", config.FormatText, false},
		{"text", "text", config.FormatText, false},
		{"json upper", "JSON", config.FormatJSON, false},
		{"tree", "tree", config.FormatTree, false},
		{"yaml padded", " yaml ", config.FormatYAML, false},
		{"summary", "summary", config.FormatSummary, false},
		{"unknown", "sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorMode(t *testing.T) {
	got, err := config.ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, config.ColorAuto, got)

	got, err = config.ParseColorMode("Never")
	require.NoError(t, err)
	assert.Equal(t, config.ColorNever, got)

	_, err = config.ParseColorMode("sometimes")
	require.Error(t, err)
}

func TestSeverityIsValid(t *testing.T) {
	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.True(t, cfg.Parser.AutolinkSupport)
	assert.True(t, cfg.Parser.WarnDocError)
	assert.False(t, cfg.Parser.InternalDocs)
	assert.Equal(t, "warning", cfg.SeverityDefault)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Contains(t, cfg.Extensions, ".dox")
}
