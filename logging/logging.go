// Package logging configures the global logger for the simulation.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance for the whole process.
var Log = logrus.New()

// Init configures the global logger from the environment and returns it.
// Call once at startup. LOG_LEVEL selects the level (default "info"),
// LOG_FORMAT=json switches to the JSON formatter for log collection.
func Init() *logrus.Logger {
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
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log.SetOutput(os.Stdout)
	return Log
}
