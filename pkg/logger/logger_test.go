package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	Init()
	t.Cleanup(func() {
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.TextFormatter{})
	})

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestInitFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "")
	Init()

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Log.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		Log.SetFormatter(&logrus.TextFormatter{})
		SetOutput(os.Stdout)
	})

	Component("tilemap").Info("hello")
	assert.Contains(t, buf.String(), `"component":"tilemap"`)
}
