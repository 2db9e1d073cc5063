package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	var err error

	switch sub {
	case "extract":
		var cfg *extractConfig

		cfg, err = parseExtractFlags(args)
		if err == nil {
			err = runExtract(cfg)
		}
	case "fix-refs":
		var cfg *fixRefsConfig

		cfg, err = parseFixRefsFlags(args)
		if err == nil {
			err = runFixRefs(cfg)
		}
	case "status":
		var cfg *statusConfig

		cfg, err = parseStatusFlags(args)
		if err == nil {
			err = runStatus(cfg)
		}
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "svext: unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}

		log.Error().Err(err).Str("command", sub).Msg("Command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `svext - extract translatable strings from Svelte components

usage: svext <command> [options]

commands:
  extract    Scan components, write the POT template and the generated Go file.
  fix-refs   Repair #: reference comments in PO files to point at components.
  status     Report per-locale translation coverage for the current extraction.

Use 'svext <command> -h' for command-specific flags.
`)
}
