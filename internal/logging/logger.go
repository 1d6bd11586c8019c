// Package logging builds the process logger and the error reporter.
//
// Usage:
//
//	log := logging.NewLogger("matchday", "info", "json")
//	log.WithField("request_id", id).Info("question answered")
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger for a named service. Output goes to
// stderr so that stdout stays free for answers. An unparsable or empty
// level falls back to info; format is "json" or anything else for text.
func NewLogger(service, level, format string) *logrus.Entry {
	log := logrus.New()
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	}
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log.WithField("service", service)
}
