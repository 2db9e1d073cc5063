package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/svext/svext/extract"
)

// Config holds the settings shared by all subcommands. Values come from
// built-in defaults, overlaid by an optional svext.yaml, overlaid by flags.
type Config struct {
	// BaseDir is the project root that reference paths are made relative
	// to; defaults to the working directory.
	BaseDir string `yaml:"base_dir"`

	// TemplatePaths are the directories scanned for components.
	TemplatePaths []string `yaml:"template_paths"`
	// Extensions of template files, e.g. ".svelte".
	Extensions []string `yaml:"extensions"`

	// Token is the marker function name the scanner recognises.
	Token string `yaml:"token"`
	// CommentStart and CommentEnd delimit comment regions in templates.
	CommentStart string `yaml:"comment_start"`
	CommentEnd   string `yaml:"comment_end"`

	// Output is the POT template path written by extract.
	Output string `yaml:"output"`
	// LocalesDir is searched for .po files by fix-refs and status.
	LocalesDir string `yaml:"locales"`
	// Domain is the gettext domain used when loading catalogs.
	Domain string `yaml:"domain"`

	// GenFile is the generated Go source path; empty disables generation.
	GenFile string `yaml:"gen_file"`
	// GenPackage is the package name declared in the generated file.
	GenPackage string `yaml:"gen_package"`
	// GenRef is the path as it appears in #: reference tokens produced by
	// the downstream gettext extraction; defaults to GenFile.
	GenRef string `yaml:"gen_ref"`

	// HostDir, when set, is the Go module directory status loads to verify
	// the generated file via the type checker.
	HostDir string `yaml:"host_dir"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

const defaultConfigPath = "svext.yaml"

func defaultConfig() *Config {
	cfg := &Config{
		BaseDir:       ".",
		TemplatePaths: nil,
		Extensions:    []string{".svelte"},
		Token:         extract.DefaultToken,
		CommentStart:  extract.DefaultCommentStart,
		CommentEnd:    extract.DefaultCommentEnd,
		Output:        "po/svelte.pot",
		LocalesDir:    "po",
		Domain:        "svelte",
		GenFile:       "svelte_strings.gen.go",
		GenPackage:    "main",
	}

	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	return cfg
}

// loadConfig returns the defaults overlaid with the YAML file at path. A
// missing file is not an error unless the path was set explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = defaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			log.Debug().Str("path", path).Msg("No configuration file found, using defaults")

			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	if cfg.GenRef == "" {
		cfg.GenRef = cfg.GenFile
	}

	log.Debug().Str("path", path).Msg("Loaded configuration")

	return cfg, nil
}

// scanner builds the configured template scanner.
func (cfg *Config) scanner() *extract.Scanner {
	return &extract.Scanner{
		Token:        cfg.Token,
		CommentStart: cfg.CommentStart,
		CommentEnd:   cfg.CommentEnd,
	}
}

func (cfg *Config) validate() error {
	if len(cfg.TemplatePaths) == 0 {
		return fmt.Errorf("at least one template path must be configured")
	}

	if cfg.Token == "" {
		return fmt.Errorf("marker token must not be empty")
	}

	return nil
}
