package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/svext/svext/extract"
)

// templateFiles walks the configured template directories and returns every
// regular file with an allowed extension, sorted for deterministic output.
func templateFiles(cfg *Config) ([]string, error) {
	allowed := map[string]bool{}
	for _, ext := range cfg.Extensions {
		allowed[ext] = true
	}

	var files []string

	for _, p := range cfg.TemplatePaths {
		err := filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if !allowed[filepath.Ext(path)] {
				return nil
			}

			files = append(files, path)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot process files under %s: %w", p, err)
		}
	}

	sort.Strings(files)

	return files, nil
}

// scanCatalog scans every template file in parallel and reduces the result.
// An unreadable file contributes zero occurrences rather than an error: a
// missing template must never fail the build.
func scanCatalog(cfg *Config) ([]extract.Unit, int, error) {
	files, err := templateFiles(cfg)
	if err != nil {
		return nil, 0, err
	}

	scanner := cfg.scanner()

	results := make([][]extract.Occurrence, len(files))

	var g errgroup.Group

	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		i, path := i, path

		g.Go(func() error {
			b, err := os.ReadFile(path)
			if err != nil {
				log.Debug().Err(err).Str("file", path).Msg("Skipping unreadable template")

				return nil
			}

			results[i] = scanner.Scan(string(b), fileID(cfg.BaseDir, path))

			return nil
		})
	}

	// Scan goroutines never return errors.
	_ = g.Wait()

	var occs []extract.Occurrence
	for _, r := range results {
		occs = append(occs, r...)
	}

	return extract.Reduce(occs), len(files), nil
}

// fileID is the path of a scanned file as it appears in references:
// relative to the project root, with forward slashes.
func fileID(baseDir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}

// poFiles returns every .po file under dir, sorted.
func poFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Mode().IsRegular() && filepath.Ext(path) == ".po" {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list catalogs under %s: %w", dir, err)
	}

	sort.Strings(files)

	return files, nil
}

// localeOf derives a canonical BCP 47 tag for a catalog path, accepting
// both po/<locale>.po and locales/<locale>/<domain>.po layouts, with
// hyphens or underscores in the locale part. Falls back to the bare file
// name when neither component parses.
func localeOf(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".po")
	if t, err := language.Parse(strings.ReplaceAll(base, "_", "-")); err == nil {
		return t.String()
	}

	parent := filepath.Base(filepath.Dir(path))
	if t, err := language.Parse(strings.ReplaceAll(parent, "_", "-")); err == nil {
		return t.String()
	}

	return base
}
