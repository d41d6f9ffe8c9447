package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	// create a buffer, a logger, and send the logs to the buffer
	var buf bytes.Buffer
	prev := Log.ZeroLogger
	prevLevel := zerolog.GlobalLevel()
	defer func() {
		Log.ZeroLogger = prev
		zerolog.SetGlobalLevel(prevLevel)
	}()
	Log.SetOutput(&buf)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	Log.Debug("Test 1")

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	Log.Debugf("Test %d", 2)

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	Log.Debug("Test 3")
	Log.Info("Test 4")
	Log.Error("Test 5", errors.New("boom"))

	output := buf.String()
	assert.Contains(t, output, "Test 2")
	assert.Contains(t, output, "Test 5")
	assert.Contains(t, output, "boom")
	assert.NotContains(t, output, "Test 1")
	assert.NotContains(t, output, "Test 3")
	assert.NotContains(t, output, "Test 4")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("nonsense"))
}
