package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	logger.Info("event", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "event", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestNewLogger_UnknownValuesFallBack(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "chatty", "csv")

	logger.Debug("hidden at default level")
	logger.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestTracer_NoopWithoutSDK(t *testing.T) {
	tracer := Tracer("test")
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "op")
	span.End()
}
