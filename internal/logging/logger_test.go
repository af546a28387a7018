package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperspice/doxypress-sub002/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		" error ": log.ErrorLevel,
		"loud":    log.InfoLevel,
		"":        log.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(name), "level %q", name)
		assert.Equal(t, want, logging.New(name).GetLevel(), "New(%q)", name)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", logging.FieldLine, 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "doxyparse")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "line=7")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Empty(t, logger.GetPrefix())
}

//nolint:paralleltest // mutates the default logger
func TestSetDefault(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestWithSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	logging.FromContext(logging.WithSource(ctx, "a.h", 0)).Debug("file")
	assert.Contains(t, buf.String(), "path=a.h")
	assert.NotContains(t, buf.String(), "line=")

	buf.Reset()
	logging.FromContext(logging.WithSource(ctx, "a.h", 12)).Debug("block")
	assert.Contains(t, buf.String(), "path=a.h")
	assert.Contains(t, buf.String(), "line=12")
}
