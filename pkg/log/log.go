// Package log wraps go-logging with the module-scoped loggers used by the
// renderer and the command line. Output always goes to a single shared sink
// so the image stream on stdout is never interleaved with diagnostics.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is the minimum severity a message needs to reach the sink. Levels
// are ordered from most verbose (Debug) to least verbose (Error).
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// backendLevels maps render verbosity onto go-logging severities
var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var lineFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var backend logging.LeveledBackend

// Logger is the subset of go-logging's API the raytracer writes through.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module; the name appears in every line.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w without changing the current level.
func SetSink(w io.Writer) {
	current := backendLevels[Notice]
	if backend != nil {
		current = backend.GetLevel("")
	}

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), lineFormat)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(current, "")
	logging.SetBackend(backend)
}

// SetLevel changes the verbosity of every module. Unknown levels are ignored.
func SetLevel(level Level) {
	if l, ok := backendLevels[level]; ok {
		backend.SetLevel(l, "")
	}
}

// CurrentLevel reports the verbosity last applied with SetLevel.
func CurrentLevel() Level {
	active := backend.GetLevel("")
	for level, l := range backendLevels {
		if l == active {
			return level
		}
	}
	return Notice
}

// stdout carries the image stream
func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
