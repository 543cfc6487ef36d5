package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(domain.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("edges", 53).Info("Built atlas models")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Built atlas models", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(53), entry["edges"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "msg")
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(domain.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewLogger(domain.LoggingConfig{Level: "verbose"}, nil)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
