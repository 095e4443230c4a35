package log

import (
	"errors"
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var ErrUnknownLevel = errors.New("log: unknown log level")

var levels = map[Level]struct {
	name    string
	backend logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

func (l Level) String() string {
	if entry, ok := levels[l]; ok {
		return entry.name
	}
	return "unknown"
}

// Parse a level from its name.
func ParseLevel(name string) (Level, error) {
	for level, entry := range levels {
		if entry.name == name {
			return level, nil
		}
	}
	return Notice, ErrUnknownLevel
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink. The verbosity of all modules is reset to
// the Notice level.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	logging.SetBackend(leveledBackend)
	SetLevel(Notice)
}

// Set logger verbosity for all modules.
func SetLevel(level Level) {
	SetModuleLevel(level, "")
}

// Set logger verbosity for a single named logger, e.g. "bvh builder".
func SetModuleLevel(level Level, module string) {
	entry, ok := levels[level]
	if !ok {
		return
	}
	leveledBackend.SetLevel(entry.backend, module)
}

func init() {
	SetSink(os.Stdout)
}
