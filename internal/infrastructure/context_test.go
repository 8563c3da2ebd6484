package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDefault swaps the process default logger for one writing JSON to
// a buffer, restoring the original on cleanup. GetLogger falls back to the
// default when no global logger has been initialized.
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestGenerateTraceID(t *testing.T) {
	first := GenerateTraceID()
	second := GenerateTraceID()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "existing")
	assert.Equal(t, "existing", GetTraceID(EnsureTraceID(ctx)))

	generated := GetTraceID(EnsureTraceID(context.Background()))
	assert.NotEmpty(t, generated)
}

func TestLoggerWithContextCarriesTraceID(t *testing.T) {
	buf := captureDefault(t)

	ctx := WithTraceID(context.Background(), "trace-456")
	LoggerWithContext(ctx).InfoContext(ctx, "doing work")

	assert.Contains(t, buf.String(), "trace-456")
	assert.Contains(t, buf.String(), "doing work")
}

func TestLoggerWithContextWithoutTraceID(t *testing.T) {
	buf := captureDefault(t)

	logger := LoggerWithContext(context.Background())
	require.NotNil(t, logger)
	logger.Info("plain")

	assert.Contains(t, buf.String(), "plain")
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestWithComponent(t *testing.T) {
	buf := captureDefault(t)

	WithComponent(slog.Default(), "decoder").Info("ready")
	assert.Contains(t, buf.String(), `"component":"decoder"`)
}

func TestWithError(t *testing.T) {
	buf := captureDefault(t)

	WithError(slog.Default(), errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)

	// A nil error adds nothing.
	logger := slog.Default()
	assert.Same(t, logger, WithError(logger, nil))
}
