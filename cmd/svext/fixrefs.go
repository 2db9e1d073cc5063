package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"codeberg.org/svext/svext/extract"
	"codeberg.org/svext/svext/pofile"
)

type fixRefsConfig struct {
	*Config
}

func parseFixRefsFlags(args []string) (*fixRefsConfig, error) {
	fs := pflag.NewFlagSet("fix-refs", pflag.ContinueOnError)

	configPath := fs.StringP("config", "c", "", "path to the svext.yaml configuration file")
	templatePaths := fs.StringSliceP("template-paths", "t", nil, "paths to template directories to scan")
	extensions := fs.StringSliceP("template-extensions", "e", nil, "extensions of template files")
	locales := fs.StringP("locales", "l", "", "directory searched for .po files")
	genRef := fs.String("gen-ref", "", "generated file path as it appears in #: references")
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

	if fs.Changed("gen-ref") {
		cfg.GenRef = *genRef
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}

	if cfg.GenRef == "" {
		cfg.GenRef = cfg.GenFile
	}

	setupLogging(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.GenRef == "" {
		return nil, fmt.Errorf("the generated reference path must be configured for fix-refs")
	}

	return &fixRefsConfig{Config: cfg}, nil
}

type rewriteResult struct {
	path     string
	locale   string
	replaced int
	err      error
}

// runFixRefs re-scans the templates to rebuild the reference map, then
// repairs each catalog file under the locales directory. Files are
// independent, so they are processed in parallel; a failing file is
// reported and the batch continues.
func runFixRefs(cfg *fixRefsConfig) error {
	units, _, err := scanCatalog(cfg.Config)
	if err != nil {
		return err
	}

	refs := extract.ReferenceMap(units)

	paths, err := poFiles(cfg.LocalesDir)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		log.Warn().Str("dir", cfg.LocalesDir).Msg("No catalog files found")

		return nil
	}

	rw := &pofile.Rewriter{GeneratedPath: cfg.GenRef}

	results := make([]rewriteResult, len(paths))

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path

		g.Go(func() error {
			results[i] = rewriteFile(rw, path, refs)

			return nil
		})
	}

	// Per-file failures are carried in results.
	_ = g.Wait()

	failed, replaced := 0, 0

	for _, res := range results {
		if res.err != nil {
			failed++

			log.Error().Err(res.err).Str("file", res.path).Msg("Failed to rewrite catalog")

			continue
		}

		replaced += res.replaced

		log.Info().
			Str("file", res.path).
			Str("locale", res.locale).
			Int("replaced", res.replaced).
			Msg("References repaired")
	}

	log.Info().
		Int("files", len(paths)-failed).
		Int("failed", failed).
		Int("replaced", replaced).
		Msg("Reference repair complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d catalog file(s) failed", failed, len(paths))
	}

	return nil
}

func rewriteFile(rw *pofile.Rewriter, path string, refs map[extract.Key][]extract.Location) rewriteResult {
	res := rewriteResult{path: path, locale: localeOf(path)}

	b, err := os.ReadFile(path)
	if err != nil {
		res.err = err

		return res
	}

	text, n := rw.Rewrite(string(b), refs)

	res.replaced = n
	if n == 0 {
		return res
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		res.err = err
	}

	return res
}
