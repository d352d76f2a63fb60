// Package logging configures the process-wide logrus logger and carries the
// per-request correlation id.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Init sets level and formatter on the standard logrus logger and routes the
// std library log package through it.
func Init(level, format string) error {
	return configure(logrus.StandardLogger(), os.Stdout, level, format)
}

func configure(l *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	l.SetLevel(lvl)
	l.SetOutput(out)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case FormatText, "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unsupported log format %q", format)
	}

	log.SetFlags(0)
	log.SetOutput(l.WriterLevel(logrus.InfoLevel))
	return nil
}

// FromContext returns an entry tagged with the request's correlation id when
// one is present.
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}
	if id, ok := CorrelationID(ctx); ok {
		entry = entry.WithField("correlation_id", id)
	}
	return entry
}
