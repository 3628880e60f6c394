package cmd

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olimci/mdpages/pkg/build"
	"github.com/olimci/mdpages/pkg/config"
	"github.com/olimci/mdpages/pkg/events"
	"github.com/olimci/mdpages/pkg/watcher"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// runWatch renders once, then re-renders on every debounced batch of changes until ctx
// is done. Outputs always overwrite, and failed rebuilds are logged without stopping.
// Directory events under the input pass the filter so moving a folder of markdown in
// or out triggers a rebuild.
func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	if !cfg.Force {
		logger.Warn("watch replaces existing html files at output paths", "output", build.DisplayPath(cfg.Root, cfg.Output))
	}

	s := &session{
		cfg:       watchConfig(cfg),
		logger:    logger,
		converter: build.NewGoldmarkConverter(),
		collector: events.NewCollector(logHandler(logger, cfg.Root)),
	}

	s.rebuild(ctx, "initial build")

	roots := []string{cfg.Input}
	if configPath != "" {
		roots = append(roots, configPath)
	}

	w, err := watcher.New(cmd.Duration("debounce"), roots...)
	if err != nil {
		return err
	}
	defer w.Close()

	w.Filter = func(path string) bool {
		return filepath.Ext(path) == build.MarkdownExt || path == configPath
	}

	g, gctx := errgroup.WithContext(ctx)

	if err := w.Start(gctx); err != nil {
		return err
	}
	logger.Info("watching for changes", "paths", displayPaths(cfg.Root, w.Roots()))

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-w.Events:
				if configPath != "" && slices.Contains(ev.Paths, configPath) {
					s.reload(cmd)
				}
				s.rebuild(gctx, ev.Reason)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case err := <-w.Errors:
				logger.Warn("watcher", "err", err)
			}
		}
	})

	return g.Wait()
}

// session is the state kept between rebuilds in watch mode
type session struct {
	cfg       *config.Config
	logger    *log.Logger
	converter build.Converter
	collector *events.Collector
}

func (s *session) rebuild(ctx context.Context, reason string) {
	collector := s.collector
	collector.Clear()
	start := time.Now()

	result, err := build.Build(ctx, s.cfg,
		build.WithConverter(s.converter),
		build.WithEventHandler(collector),
	)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		collector.Handle(events.Event{
			Level:   events.Error,
			Source:  s.cfg.Input,
			Message: "build failed",
			Error:   err,
		})
	}

	if collector.HasLevel(events.Warn) {
		s.logger.Log(eventLevels[collector.MaxLevel()], "rebuilt with problems",
			"reason", reason,
			"summary", formatSummary(collector.Summary()),
		)
		return
	}

	s.logger.Info("rebuilt",
		"reason", reason,
		"pages", len(result.Pages),
		"duration", time.Since(start).Truncate(time.Millisecond),
	)
}

// reload picks up an edited config file, keeping the previous config when it is invalid
func (s *session) reload(cmd *cli.Command) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		s.logger.Error("failed to reload config, keeping the previous one", "err", err)
		return
	}

	if cfg.Input != s.cfg.Input {
		s.logger.Warn("input directory changed, restart to watch it", "input", build.DisplayPath(cfg.Root, cfg.Input))
	}

	s.cfg = watchConfig(cfg)
	s.logger.Info("config reloaded")
}

// watchConfig copies cfg with overwriting enabled, since watch owns the outputs it writes
func watchConfig(cfg *config.Config) *config.Config {
	out := *cfg
	out.Extensions = slices.Clone(cfg.Extensions)
	out.Force = true
	return &out
}

func displayPaths(root string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = build.DisplayPath(root, p)
	}
	return out
}
