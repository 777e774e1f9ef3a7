package commands

import (
	"context"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/server"
	"git.home.luguber.info/inful/sitebuilder/internal/watch"
)

// ServeCmd builds the site, rebuilds it on change and serves the output.
type ServeCmd struct {
	Host         string        `help:"Override serve.host"`
	Port         int           `short:"p" help:"Override serve.port"`
	Debounce     time.Duration `help:"Override serve.debounce"`
	NoLiveReload bool          `name:"no-live-reload" help:"Disable the live reload socket and script injection"`
	Lenient      bool          `help:"Skip malformed pages instead of failing the rebuild"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, s.Lenient)
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Serve.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}
	if s.Debounce > 0 {
		cfg.Serve.Debounce.Duration = s.Debounce
	}

	ctx, cancel := signalContext()
	defer cancel()

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	svc := build.NewBuildService().WithRecorder(recorder)

	srv := server.New(server.Options{
		Root:       cfg.OutputPath(),
		LiveReload: cfg.Serve.LiveReloadEnabled() && !s.NoLiveReload,
		Registry:   reg,
		Recorder:   recorder,
		Logger:     g.Logger,
	})

	loop := watch.New(watch.Options{
		Roots:     []string{cfg.ContentPath(), cfg.TemplatePath()},
		Debounce:  cfg.Serve.Debounce.Duration,
		OnRebuild: srv.NotifyRebuild,
		Recorder:  recorder,
	}, func(ctx context.Context) error {
		_, err := svc.Run(ctx, build.BuildRequest{Config: cfg})
		return err
	})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.ListenAndServe(gctx, cfg.ServeAddr()) })
	group.Go(func() error { return loop.Run(gctx) })

	err = group.Wait()
	g.Logger.Info("Serve stopped", logfields.Addr(cfg.ServeAddr()))
	return err
}
