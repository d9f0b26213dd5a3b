package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a configured logrus logger. Development gets a text formatter and
// debug level, everything else JSON at info level. A non-empty level overrides both.
func New(appName, env, level string) *logrus.Logger {
	return newWithOutput(os.Stdout, appName, env, level)
}

func newWithOutput(out io.Writer, appName, env, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			log.SetLevel(parsed)
		} else {
			log.WithField("level", level).Warn("unknown log level, keeping default")
		}
	}
	log.WithFields(logrus.Fields{"app": appName, "env": env}).Debug("logger initialized")
	return log
}

// Discard returns a logger that drops everything. Used as a default when no logger is wired.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
