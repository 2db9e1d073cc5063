package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures the global zerolog logger from the config's log
// section. Console output is colored only when stderr is a terminal.
func setupLogging(level, format string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}

	if format == "json" {
		log.Logger = log.Output(os.Stderr)

		return
	}

	log.Logger = log.Output(consoleWriter(os.Stderr))
}

func consoleWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    !isatty.IsTerminal(f.Fd()),
		TimeFormat: time.DateTime,
	}
}
