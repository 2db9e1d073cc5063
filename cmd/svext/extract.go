package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"codeberg.org/svext/svext/extract"
	"codeberg.org/svext/svext/gogen"
	"codeberg.org/svext/svext/pofile"
)

type extractConfig struct {
	*Config

	// skipGen disables writing the generated Go file, leaving only the POT.
	skipGen bool
}

func parseExtractFlags(args []string) (*extractConfig, error) {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)

	configPath := fs.StringP("config", "c", "", "path to the svext.yaml configuration file")
	templatePaths := fs.StringSliceP("template-paths", "t", nil, "paths to template directories to scan")
	extensions := fs.StringSliceP("template-extensions", "e", nil, "extensions of template files")
	output := fs.StringP("output", "o", "", "POT file to write")
	token := fs.String("token", "", "marker function name to look for")
	genFile := fs.String("gen-file", "", "generated Go source path")
	genPackage := fs.String("gen-package", "", "package name for the generated file")
	skipGen := fs.Bool("no-gen", false, "skip writing the generated Go file")
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

	if fs.Changed("output") {
		cfg.Output = *output
	}

	if fs.Changed("token") {
		cfg.Token = *token
	}

	if fs.Changed("gen-file") {
		cfg.GenFile = *genFile
	}

	if fs.Changed("gen-package") {
		cfg.GenPackage = *genPackage
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

	return &extractConfig{Config: cfg, skipGen: *skipGen}, nil
}

func runExtract(cfg *extractConfig) error {
	units, nfiles, err := scanCatalog(cfg.Config)
	if err != nil {
		return err
	}

	if err := writePOT(cfg.Config, units); err != nil {
		return err
	}

	if !cfg.skipGen && cfg.GenFile != "" {
		if err := writeGenFile(cfg.Config, units); err != nil {
			return err
		}
	}

	log.Info().
		Int("files", nfiles).
		Int("units", len(units)).
		Str("output", cfg.Output).
		Msg("Extraction complete")

	return nil
}

func writePOT(cfg *Config, units []extract.Unit) error {
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", cfg.Output, err)
	}

	wr := &pofile.Writer{ProjectID: cfg.Domain}
	if err := wr.WritePOT(f, units); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func writeGenFile(cfg *Config, units []extract.Unit) error {
	var b bytes.Buffer
	if err := gogen.Generate(&b, cfg.GenPackage, units); err != nil {
		return err
	}

	if err := os.WriteFile(cfg.GenFile, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", cfg.GenFile, err)
	}

	log.Info().Str("file", cfg.GenFile).Msg("Generated lookup table source")

	return nil
}
