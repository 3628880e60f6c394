package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultInput               = "markdown"
	DefaultStylesheet          = "index.css"
	DefaultSecondaryStylesheet = "page.css"
)

var (
	ErrUnsupportedConfig = errors.New("unsupported config file")
	ErrUnknownKeys       = errors.New("unknown config keys")
)

// Config is the configuration of a single render run. It is built once at startup and
// only read afterwards.
type Config struct {
	// Root holds the stylesheet and is what printed output paths are relative to
	Root string `toml:"root" yaml:"root" json:"root"`
	// Input is searched recursively for markdown files
	Input string `toml:"input" yaml:"input" json:"input"`
	// Output mirrors the layout of Input, defaults to Root
	Output string `toml:"output" yaml:"output" json:"output"`

	Extensions []string `toml:"extensions" yaml:"extensions" json:"extensions"`

	Force            bool `toml:"force" yaml:"force" json:"force"`
	KeepTitleHeading bool `toml:"keep_title_heading" yaml:"keep_title_heading" json:"keep_title_heading"`
	Minify           bool `toml:"minify" yaml:"minify" json:"minify"`

	Stylesheet          string `toml:"stylesheet" yaml:"stylesheet" json:"stylesheet"`
	SecondaryStylesheet string `toml:"secondary_stylesheet" yaml:"secondary_stylesheet" json:"secondary_stylesheet"`
}

// DefaultConfig constructs a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Root:                ".",
		Input:               DefaultInput,
		Output:              "",
		Extensions:          []string{},
		Stylesheet:          DefaultStylesheet,
		SecondaryStylesheet: DefaultSecondaryStylesheet,
	}
}

// Load loads a Config from a .toml, .yaml, .yml or .json file, on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills in defaults and normalises the Config.
func (c *Config) Validate() error {
	c.Root = strings.TrimSpace(c.Root)
	if c.Root == "" {
		c.Root = "."
	}

	c.Input = strings.TrimSpace(c.Input)
	if c.Input == "" {
		c.Input = DefaultInput
	}

	c.Output = strings.TrimSpace(c.Output)
	c.Extensions = normalizeExtensions(c.Extensions)

	c.Stylesheet = strings.TrimSpace(c.Stylesheet)
	if c.Stylesheet == "" {
		c.Stylesheet = DefaultStylesheet
	}
	c.SecondaryStylesheet = strings.TrimSpace(c.SecondaryStylesheet)
	if c.SecondaryStylesheet == "" {
		c.SecondaryStylesheet = DefaultSecondaryStylesheet
	}

	if strings.ContainsAny(c.SecondaryStylesheet, `/\`) {
		return fmt.Errorf("secondary_stylesheet must be a file name (got %q)", c.SecondaryStylesheet)
	}

	return nil
}

// Resolve makes Root absolute and resolves Input and Output against it.
func (c *Config) Resolve() error {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", c.Root, err)
	}
	c.Root = root

	if c.Output == "" {
		c.Output = root
	}

	c.Input = resolvePath(root, c.Input)
	c.Output = resolvePath(root, c.Output)
	return nil
}

// StylesheetPath is the absolute location of the primary stylesheet
func (c *Config) StylesheetPath() string {
	return resolvePath(c.Root, c.Stylesheet)
}

// ParseExtensions splits a comma separated extension list, dropping empty entries.
func ParseExtensions(raw string) []string {
	return normalizeExtensions(strings.Split(raw, ","))
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext = strings.TrimSpace(ext); ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
