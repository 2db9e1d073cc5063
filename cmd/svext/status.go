package main

import (
	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"codeberg.org/svext/svext/extract"
	"codeberg.org/svext/svext/gogen"
)

type statusConfig struct {
	*Config
}

func parseStatusFlags(args []string) (*statusConfig, error) {
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)

	configPath := fs.StringP("config", "c", "", "path to the svext.yaml configuration file")
	templatePaths := fs.StringSliceP("template-paths", "t", nil, "paths to template directories to scan")
	extensions := fs.StringSliceP("template-extensions", "e", nil, "extensions of template files")
	locales := fs.StringP("locales", "l", "", "directory searched for .po files")
	hostDir := fs.String("host-dir", "", "Go module directory to verify the generated file in")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(*configPath, fs.Changed("config"))
	if err != nil {
		return nil, err
	}

	if fs.Changed("template-paths") {
		cfg.TemplatePaths = *templatePaths
	}

	if fs.Changed("template-extensions") {
		cfg.Extensions = *extensions
	}

	if fs.Changed("locales") {
		cfg.LocalesDir = *locales
	}

	if fs.Changed("host-dir") {
		cfg.HostDir = *hostDir
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}

	setupLogging(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &statusConfig{Config: cfg}, nil
}

// runStatus reports per-locale translation coverage for the current
// extraction, and optionally verifies the generated Go file against the
// catalog via the type checker.
func runStatus(cfg *statusConfig) error {
	units, nfiles, err := scanCatalog(cfg.Config)
	if err != nil {
		return err
	}

	log.Info().Int("files", nfiles).Int("units", len(units)).Msg("Scanned components")

	paths, err := poFiles(cfg.LocalesDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		locale := localeOf(path)

		po := gotext.NewPo()
		po.ParseFile(path)

		loc := gotext.NewLocale("", locale)
		loc.AddTranslator(cfg.Domain, po)

		translated, missing := 0, 0

		for _, u := range units {
			if u.Content == "" {
				continue
			}

			var ok bool
			if u.Kind == extract.PluralPair {
				ok = loc.IsTranslatedND(cfg.Domain, u.Content, 1)
			} else {
				ok = loc.IsTranslatedD(cfg.Domain, u.Content)
			}

			if ok {
				translated++
			} else {
				missing++
			}
		}

		log.Info().
			Str("locale", locale).
			Str("file", path).
			Int("translated", translated).
			Int("missing", missing).
			Msg("Locale coverage")
	}

	if cfg.HostDir != "" && cfg.GenFile != "" {
		if err := gogen.Check(cfg.HostDir, cfg.GenFile, units); err != nil {
			return err
		}

		log.Info().Str("file", cfg.GenFile).Msg("Generated file is up to date")
	}

	return nil
}
