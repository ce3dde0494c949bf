package app

import (
	"context"
	"fmt"
	"time"

	"github.com/backdeck/backdeck/internal/backdrop"
	"github.com/backdeck/backdeck/internal/config"
	"github.com/backdeck/backdeck/internal/logging"
	"github.com/backdeck/backdeck/internal/prefs"
	"github.com/backdeck/backdeck/internal/state"
	"github.com/backdeck/backdeck/internal/ui"
)

// Options configure the Backdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/backdeck/prefs.toml
	Site       string // overrides the configured site address
	PollEvery  int    // seconds; zero uses the configured value
	Debug      bool   // verbose API logging
}

// Run boots the Backdeck TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Site != "" {
		cfg.Site = opts.Site
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	logger := logging.New(cfg.LogDir, opts.Debug)
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client := backdrop.New(backdrop.Options{
		Timeout:    cfg.Timeout,
		CompatHost: cfg.CompatHost,
		Logger:     logger,
	})

	store := &state.Store{}

	StartPoller(ctx, store, client, cfg.PollEvery, logger)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    &cfg,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		PageLimit: userPrefs.PageLimit,
		PrefsPath: opts.PrefsPath,
	})
}
