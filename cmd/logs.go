package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/olimci/mdpages/pkg/build"
	"github.com/olimci/mdpages/pkg/events"
	"github.com/urfave/cli/v3"
)

var levelColors = map[log.Level]lipgloss.Color{
	log.DebugLevel: lipgloss.Color("#6c7086"), // muted
	log.InfoLevel:  lipgloss.Color("#89b4fa"), // blue
	log.WarnLevel:  lipgloss.Color("#f9e2af"), // yellow
	log.ErrorLevel: lipgloss.Color("#f38ba8"), // red
}

var eventLevels = map[events.Level]log.Level{
	events.Debug: log.DebugLevel,
	events.Info:  log.InfoLevel,
	events.Warn:  log.WarnLevel,
	events.Error: log.ErrorLevel,
}

// newLogger logs to the command's error writer; stdout stays free for rendered paths
func newLogger(cmd *cli.Command) *log.Logger {
	logger := log.NewWithOptions(errWriter(cmd), log.Options{
		Prefix: "mdpages",
		Level:  logLevel(cmd),
	})

	styles := log.DefaultStyles()
	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			Bold(true).
			MaxWidth(4).
			Foreground(color)
	}
	logger.SetStyles(styles)

	return logger
}

func logLevel(cmd *cli.Command) log.Level {
	switch {
	case cmd.Bool("quiet"):
		return log.ErrorLevel
	case cmd.Bool("verbose"):
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// logHandler forwards build events to logger, with sources shown relative to root
func logHandler(logger *log.Logger, root string) events.Handler {
	return events.NewHandlerFunc(func(ev events.Event) {
		keyvals := make([]any, 0, 4)
		if ev.Source != "" {
			keyvals = append(keyvals, "source", build.DisplayPath(root, ev.Source))
		}
		if ev.Error != nil {
			keyvals = append(keyvals, "err", ev.Error)
		}

		level, ok := eventLevels[ev.Level]
		if !ok {
			level = log.InfoLevel
		}
		logger.Log(level, ev.Message, keyvals...)
	})
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
