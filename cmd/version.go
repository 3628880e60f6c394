package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/mdpages/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func runVersion(ctx context.Context, cmd *cli.Command) error {
	_, err := fmt.Fprintf(cmd.Root().Writer, "mdpages version %s\n", Version)
	return err
}
