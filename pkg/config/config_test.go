package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
		wantErr error
	}{
		{
			name: "toml",
			file: "mdpages.toml",
			content: `
input = "docs"
output = "site"
extensions = ["tables", " footnotes ", ""]
force = true
keep_title_heading = true
`,
			want: Config{
				Root:                ".",
				Input:               "docs",
				Output:              "site",
				Extensions:          []string{"tables", "footnotes"},
				Force:               true,
				KeepTitleHeading:    true,
				Stylesheet:          DefaultStylesheet,
				SecondaryStylesheet: DefaultSecondaryStylesheet,
			},
		},
		{
			name: "yaml",
			file: "mdpages.yaml",
			content: `input: notes
minify: true
stylesheet: style/main.css
`,
			want: Config{
				Root:                ".",
				Input:               "notes",
				Extensions:          []string{},
				Minify:              true,
				Stylesheet:          "style/main.css",
				SecondaryStylesheet: DefaultSecondaryStylesheet,
			},
		},
		{
			name:    "json",
			file:    "mdpages.json",
			content: `{"root": "www", "secondary_stylesheet": "extra.css"}`,
			want: Config{
				Root:                "www",
				Input:               DefaultInput,
				Extensions:          []string{},
				Stylesheet:          DefaultStylesheet,
				SecondaryStylesheet: "extra.css",
			},
		},
		{
			name:    "empty yaml keeps defaults",
			file:    "empty.yml",
			content: "",
			want:    *DefaultConfig(),
		},
		{
			name:    "unknown toml key",
			file:    "bad.toml",
			content: "nope = 1\n",
			wantErr: ErrUnknownKeys,
		},
		{
			name:    "unsupported extension",
			file:    "mdpages.ini",
			content: "input=x",
			wantErr: ErrUnsupportedConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := Load(p)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.Root != tt.want.Root || cfg.Input != tt.want.Input || cfg.Output != tt.want.Output {
				t.Errorf("paths = (%q, %q, %q), want (%q, %q, %q)",
					cfg.Root, cfg.Input, cfg.Output, tt.want.Root, tt.want.Input, tt.want.Output)
			}
			if !slices.Equal(cfg.Extensions, tt.want.Extensions) {
				t.Errorf("extensions = %v, want %v", cfg.Extensions, tt.want.Extensions)
			}
			if cfg.Force != tt.want.Force || cfg.KeepTitleHeading != tt.want.KeepTitleHeading || cfg.Minify != tt.want.Minify {
				t.Errorf("flags = %+v, want %+v", cfg, tt.want)
			}
			if cfg.Stylesheet != tt.want.Stylesheet || cfg.SecondaryStylesheet != tt.want.SecondaryStylesheet {
				t.Errorf("stylesheets = (%q, %q), want (%q, %q)",
					cfg.Stylesheet, cfg.SecondaryStylesheet, tt.want.Stylesheet, tt.want.SecondaryStylesheet)
			}
		})
	}
}

func TestValidateRejectsSecondaryPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SecondaryStylesheet = "css/page.css"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted a secondary stylesheet path")
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Root = root
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.Input != filepath.Join(root, DefaultInput) {
		t.Errorf("input = %q", cfg.Input)
	}
	if cfg.Output != root {
		t.Errorf("output = %q, want root %q", cfg.Output, root)
	}
	if got, want := cfg.StylesheetPath(), filepath.Join(root, DefaultStylesheet); got != want {
		t.Errorf("StylesheetPath() = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "elsewhere")
	cfg = DefaultConfig()
	cfg.Root = root
	cfg.Output = abs
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Output != abs {
		t.Errorf("absolute output changed to %q", cfg.Output)
	}
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"tables", []string{"tables"}},
		{"fenced_code, tables ,,footnotes", []string{"fenced_code", "tables", "footnotes"}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseExtensions(tt.raw); !slices.Equal(got, tt.want) {
				t.Errorf("ParseExtensions(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
