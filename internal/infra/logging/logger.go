package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// InitLogger configures the global logger to write JSON lines to stdout and to
// a size-rotated file. An empty file path logs to stdout only.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	var out io.Writer = os.Stdout
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		}
		out = zerolog.MultiLevelWriter(os.Stdout, rotator)
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(level))

	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetLogLevel changes the level of the global logger. Unknown levels fall
// back to info.
func SetLogLevel(level string) {
	mu.Lock()
	logger = logger.Level(parseLevel(level))
	mu.Unlock()
}

// SetLoggerForTest replaces the global logger.
func SetLoggerForTest(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs msg with alternating key/value pairs.
func Debug(msg string, kv ...any) {
	l := current()
	withFields(l.Debug(), kv).Msg(msg)
}

// Info logs msg with alternating key/value pairs.
func Info(msg string, kv ...any) {
	l := current()
	withFields(l.Info(), kv).Msg(msg)
}

// Warn logs msg with alternating key/value pairs.
func Warn(msg string, kv ...any) {
	l := current()
	withFields(l.Warn(), kv).Msg(msg)
}

// Error logs msg with alternating key/value pairs.
func Error(msg string, kv ...any) {
	l := current()
	withFields(l.Error(), kv).Msg(msg)
}

func withFields(e *zerolog.Event, kv []any) *zerolog.Event {
	if e == nil {
		return e
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if err, ok := kv[i+1].(error); ok {
			e = e.AnErr(key, err)
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	if len(kv)%2 == 1 {
		e = e.Interface("extra", kv[len(kv)-1])
	}
	return e
}
