package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// MetricsPath serves the Prometheus registry.
const MetricsPath = "/metrics"

const shutdownTimeout = 5 * time.Second

// Options configures a preview Server.
type Options struct {
	// Root is the output directory served at /.
	Root string
	// LiveReload enables the websocket endpoint and script injection.
	LiveReload bool
	// Registry backs /metrics. Nil serves the default Prometheus registry.
	Registry *prom.Registry
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Server serves a generated site for local preview.
type Server struct {
	opts Options
	hub  *LiveReloadHub
}

// New returns a Server for opts.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{opts: opts}
	if opts.LiveReload {
		s.hub = NewLiveReloadHub(opts.Recorder)
	}
	return s
}

// Handler returns the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, metrics.HTTPHandler(s.opts.Registry))

	var files http.Handler = http.FileServer(http.Dir(s.opts.Root))
	if s.hub != nil {
		mux.Handle(LiveReloadPath, s.hub)
		files = injectLiveReload(files)
	}
	mux.Handle("/", noCache(files))

	return chain(s.opts.Logger, mux)
}

// NotifyRebuild broadcasts a reload after a successful pass. It matches the
// watch loop's OnRebuild hook.
func (s *Server) NotifyRebuild(err error) {
	if err != nil || s.hub == nil {
		return
	}
	s.hub.Broadcast(ReloadMessage)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to listen").
			Fatal().WithContext("addr", addr).Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		if s.hub != nil {
			s.hub.Shutdown()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.opts.Logger.Warn("HTTP shutdown", logfields.Error(err))
		}
	}()

	s.opts.Logger.Info("Serving site", logfields.Addr(ln.Addr().String()), logfields.Path(s.opts.Root))
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return err
}
