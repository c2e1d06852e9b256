package correlation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIDRoundTrip(t *testing.T) {
	ctx := WithID(context.Background(), "abc123")

	id, ok := ID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestIDMissing(t *testing.T) {
	_, ok := ID(context.Background())
	assert.False(t, ok)
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestHandlerInjectsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := WithID(context.Background(), "req-42")
	logger.InfoContext(ctx, "vote processed")

	assert.Contains(t, buf.String(), `"correlation_id":"req-42"`)
}

func TestHandlerWithoutCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "startup")

	assert.NotContains(t, buf.String(), "correlation_id")
}
