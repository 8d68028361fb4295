package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logger used across the tool.
type Logger = *zap.SugaredLogger

// NewCliLogger returns a logger writing Info (and Debug when verbose) as bare
// messages to stdout, and Warn or worse with a level prefix to stderr.
func NewCliLogger(stdout io.Writer, stderr io.Writer, verbose bool) Logger {
	minLevel := zapcore.InfoLevel
	if verbose {
		minLevel = zapcore.DebugLevel
	}

	stdoutLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.WarnLevel
	})
	stderrLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(stdoutEncoderConfig()), Lock(stdout), stdoutLevels),
		zapcore.NewCore(zapcore.NewConsoleEncoder(stderrEncoderConfig()), Lock(stderr), stderrLevels),
	)
	return zap.New(core).Sugar()
}

// Lock serializes writes to w. Pass the result both to NewCliLogger and to
// anything else printing to the same stream so their output never interleaves.
func Lock(w io.Writer) zapcore.WriteSyncer {
	return zapcore.Lock(zapcore.AddSync(w))
}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() Logger {
	return zap.NewNop().Sugar()
}

func stdoutEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
}

func stderrEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
	}
}
