package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Debug      bool
	File       string // empty means stderr
	MaxSize    int    // megabytes
	MaxBackups int
	MaxAge     int // days
}

// Setup installs the default slog logger and returns a closer for the log file, if any.
func Setup(opts Options) io.Closer {
	writer, closer := output(opts)

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return closer
}

func output(opts Options) (io.Writer, io.Closer) {
	if opts.File == "" {
		return os.Stderr, nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   true,
	}
	return rotator, rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
