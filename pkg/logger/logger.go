// Package logger owns the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It is usable before Init with logrus defaults
// so packages and tests never see a nil logger.
var Log = logrus.New()

// Init configures the global logger from the environment. Call once from main.
//
//	LOG_LEVEL  - logrus level name, default "info"
//	LOG_FORMAT - "json" for machine-readable output, anything else for text
func Init() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// SetOutput redirects log output. The terminal backend uses this to keep
// log lines from tearing the tcell screen.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
