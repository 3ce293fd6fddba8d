package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging points the standard logger at stderr or, when cfg.File is
// set, at a size-rotated log file. The returned Closer releases the file.
func SetupLogging(cfg LogConfig) io.Closer {
	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	log.SetOutput(lj)
	return lj
}
