package cmd

import (
	"path/filepath"
	"strings"

	"github.com/olimci/mdpages/pkg/config"
	"github.com/urfave/cli/v3"
)

// loadConfig builds the run configuration. A config file, when given, replaces the
// defaults and its root is relative to the file; flags set on the command line win.
// It returns the absolute config path, or "" when there is none.
func loadConfig(cmd *cli.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()

	configPath := strings.TrimSpace(cmd.String("config"))
	if configPath != "" {
		absConfigPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, "", err
		}

		cfg, err = config.Load(absConfigPath)
		if err != nil {
			return nil, "", err
		}

		cfg.Root = resolvePath(filepath.Dir(absConfigPath), cfg.Root)
		configPath = absConfigPath
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	if err := cfg.Resolve(); err != nil {
		return nil, "", err
	}

	return cfg, configPath, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("root") {
		cfg.Root = cmd.String("root")
	}
	if cmd.IsSet("input") {
		cfg.Input = cmd.String("input")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("extensions") {
		cfg.Extensions = config.ParseExtensions(cmd.String("extensions"))
	}
	if cmd.IsSet("force") {
		cfg.Force = cmd.Bool("force")
	}
	if cmd.IsSet("keep-title-heading") {
		cfg.KeepTitleHeading = cmd.Bool("keep-title-heading")
	}
	if cmd.IsSet("minify") {
		cfg.Minify = cmd.Bool("minify")
	}
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
