// Package logger configures the application wide logrus logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// L is the shared logger. It is usable before Init with logrus defaults.
var L = logrus.New()

// Init sets the level and formatter. Production logs are JSON, development
// logs are human readable text.
func Init(level string, production bool) {
	L.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
		L.WithField("configured_level", level).Warn("invalid LOG_LEVEL, defaulting to info")
	}
	L.SetLevel(lvl)

	if production {
		L.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	L.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
