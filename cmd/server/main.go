package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/server"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/web"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logging.New(os.Stderr, "info").Fatal("load config", "err", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(cfg config.Config, logger *log.Logger) error {
	store, closeStore, err := prefs.Open(cfg.PrefsDriver, cfg.PrefsPath, logging.Component(logger, "prefs"))
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close preference store", "err", err)
		}
	}()

	source, err := content.NewSource(cfg.ContentPath, cfg.ResumePath, logging.Component(logger, "content"))
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	runtime, err := server.New(server.Options{
		Config: cfg,
		Store:  store,
		Source: source,
		Logger: logging.Component(logger, "ssh"),
	})
	if err != nil {
		return fmt.Errorf("build ssh server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runtime.Run(ctx) })
	g.Go(func() error {
		if err := source.Watch(ctx); err != nil {
			logger.Warn("content hot reload disabled", "err", err)
		}
		return nil
	})

	if cfg.HTTPEnabled() {
		gin.SetMode(gin.ReleaseMode)
		mode, _ := theme.ParseMode(cfg.DefaultTheme)
		site := web.New(web.Options{
			Source:        source,
			Logger:        logging.Component(logger, "http"),
			Default:       mode,
			SecureCookies: cfg.SecureCookies,
		})
		g.Go(func() error { return site.Run(ctx, cfg.HTTPAddr) })
	}

	logger.Info("portfolio started",
		"ssh", cfg.SSHAddress(),
		"http", cfg.HTTPAddr,
		"prefs", cfg.PrefsDriver,
		"default_theme", cfg.DefaultTheme,
	)
	return g.Wait()
}
