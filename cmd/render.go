package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/mdpages/pkg/build"
	"github.com/urfave/cli/v3"
)

// runRender performs a single build and prints every written path once all files are done
func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)

	result, err := build.Build(ctx, cfg, build.WithEventHandler(logHandler(logger, cfg.Root)))
	if err != nil {
		return err
	}

	out := outWriter(cmd)
	if len(result.Pages) == 0 {
		_, err := fmt.Fprintf(out, "No markdown files found under: %s\n", cfg.Input)
		return err
	}

	for _, target := range result.Targets() {
		if _, err := fmt.Fprintln(out, target); err != nil {
			return err
		}
	}

	return nil
}
