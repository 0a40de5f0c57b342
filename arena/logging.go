package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// initLogging builds the shared logger: pretty console output plus a
// plain JSON history file so full hand narration survives the run.
func initLogging(cfg Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	writers := []io.Writer{console}
	closer := func() {}
	if cfg.HistoryFile != "" {
		f, err := os.OpenFile(cfg.HistoryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, err
		}
		writers = append(writers, f)
		closer = func() { _ = f.Close() }
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return log, closer, nil
}
