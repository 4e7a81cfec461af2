package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the logging interface used throughout the contact book. It is implemented by
// go.uber.org/zap.SugaredLogger.
//
// Levels
//   - Fatal: Logs and then calls os.Exit(1). Only used by the binaries during startup.
//   - Panic: A storage operation failed while serving a request. gin's recovery middleware turns
//     the panic into a 500 response.
//   - Warn: A request could not be fully honored, e.g. a contact location was requested but is
//     unknown.
//   - Info: Contacts added or deleted, service started.
//   - Debug: Files written to and read from disk.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Panicw(msg string, keysAndValues ...any)
	// Fatalw logs and then calls os.Exit(1)
	Fatalw(msg string, keysAndValues ...any)

	// Sync flushes any buffered log entries.
	Sync() error
}

// New returns a production Logger writing JSON at the given level. Valid levels are the ones
// understood by zapcore, e.g. "debug", "info", "warn". An empty level means "info".
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level.SetLevel(lvl)
	}
	core, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return core.Sugar(), nil
}

// Test returns a Logger that writes to the test output of tb.
func Test(tb testing.TB) Logger {
	tb.Helper()
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	lggr := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(cfg),
			zaptest.NewTestingWriter(tb),
			zapcore.DebugLevel,
		),
	)
	return lggr.Sugar()
}

// TestObserved returns a test Logger together with the entries it recorded at or above lvl.
func TestObserved(tb testing.TB, lvl zapcore.Level) (Logger, *observer.ObservedLogs) {
	tb.Helper()
	oCore, logs := observer.New(lvl)
	observe := zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, oCore)
	})
	return zaptest.NewLogger(tb, zaptest.WrapOptions(observe)).Sugar(), logs
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return zap.New(zapcore.NewNopCore()).Sugar()
}
