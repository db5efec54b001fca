package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	loggerMutex sync.RWMutex
	logger      = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	if f, ok := w.(*os.File); ok {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects all subsequent log lines to w. A *os.File gets the
// console writer, anything else receives one JSON object per line.
func SetOutput(w io.Writer) {
	loggerMutex.Lock()
	level := logger.GetLevel()
	logger = newLogger(w).Level(level)
	loggerMutex.Unlock()
}

// SetLevel accepts zerolog level names: debug, info, warn, error, disabled.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log: parse level %q: %w", level, err)
	}
	loggerMutex.Lock()
	logger = logger.Level(lvl)
	loggerMutex.Unlock()
	return nil
}

func emit(lvl zerolog.Level, v []interface{}) {
	loggerMutex.RLock()
	l := logger
	loggerMutex.RUnlock()
	l.WithLevel(lvl).Msg(fmt.Sprint(v...))
}

func Debug(v ...interface{}) { emit(zerolog.DebugLevel, v) }

func Info(v ...interface{}) { emit(zerolog.InfoLevel, v) }

func Warn(v ...interface{}) { emit(zerolog.WarnLevel, v) }

func Error(v ...interface{}) { emit(zerolog.ErrorLevel, v) }
