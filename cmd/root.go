package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

// Execute runs the mdpages CLI with args, which include the program name
func Execute(ctx context.Context, args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(ctx, args)
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "mdpages",
		Usage:     "Render a directory of markdown files into standalone HTML pages",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Value: ".", Usage: "project root holding the stylesheet"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "markdown", Usage: "markdown directory, relative to root"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "", Usage: "output directory, relative to root (defaults to root)"},
			&cli.StringFlag{Name: "extensions", Aliases: []string{"e"}, Value: "", Usage: "comma separated markdown extensions"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite existing HTML files"},
			&cli.BoolFlag{Name: "keep-title-heading", Aliases: []string{"k"}, Usage: "keep the first level-1 heading in the body"},
			&cli.BoolFlag{Name: "minify", Usage: "minify rendered HTML"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "", Usage: "config file path (.toml, .yaml, .json)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug output"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Action: runRender,
		Commands: []*cli.Command{
			{
				Name:   "render",
				Usage:  "Render every markdown file once",
				Action: runRender,
			},
			{
				Name:  "watch",
				Usage: "Render, then re-render whenever markdown or config changes",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "debounce", Value: 250 * time.Millisecond, Usage: "Debounce window for rebuilds"},
				},
				Action: runWatch,
			},
			{
				Name:   "version",
				Usage:  "print version",
				Action: runVersion,
			},
		},
	}
}
