package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind the small leveled API the rest of the
// codebase uses.
type Logger struct {
	zl zerolog.Logger
}

func New() *Logger {
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stdout})
}

func NewWithWriter(writer io.Writer) *Logger {
	return &Logger{
		zl: zerolog.New(writer).With().Timestamp().Logger(),
	}
}

func (l *Logger) Debug(v ...interface{}) {
	l.zl.Debug().Msg(sprint(v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(v ...interface{}) {
	l.zl.Info().Msg(sprint(v...))
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.zl.Warn().Msg(sprint(v...))
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.zl.Error().Msg(sprint(v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// sprint joins like fmt.Println does, without the trailing newline.
func sprint(v ...interface{}) string {
	s := fmt.Sprintln(v...)
	return s[:len(s)-1]
}
