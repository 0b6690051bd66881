// Package telemetry provides structured, leveled logging of pipeline
// stage transitions (lex -> parse -> codegen), gated by the
// CLI's -d/-dd verbosity flags. The teacher reports progress with plain
// fmt.Printf lines; compass-go generalizes that to structured fields
// (stage name and counts) via the same logging library the rest of the
// pack's CLI tools reach for.
package telemetry

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger so callers depend on a small interface
// instead of the library directly.
type Logger struct {
	*logrus.Logger
}

// Verbosity is the CLI's -d/-dd flag count.
type Verbosity int

const (
	Quiet   Verbosity = 0
	Verbose Verbosity = 1
	Debug   Verbosity = 2
)

// New builds a Logger at the level implied by v, writing to w.
func New(w io.Writer, v Verbosity) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch v {
	case Debug:
		l.SetLevel(logrus.DebugLevel)
	case Verbose:
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}

	return &Logger{Logger: l}
}

// Stage returns a log entry carrying the pipeline phase name as a
// structured field; the caller logs through it.
func (l *Logger) Stage(name string) *logrus.Entry {
	return l.WithField("stage", name)
}

// Stat logs a pipeline phase's summary counters, e.g. tokens produced or
// statements parsed, at info level.
func (l *Logger) Stat(stage string, fields logrus.Fields) {
	entry := l.WithField("stage", stage)
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}
	entry.Info("stage complete")
}
