package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/observability"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
	"git.home.luguber.info/inful/sitebuilder/internal/paths"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
	"git.home.luguber.info/inful/sitebuilder/internal/workspace"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	workspaceFactory func(outputDir string) *workspace.Manager
	recorder         metrics.Recorder
}

// NewBuildService creates a new DefaultBuildService with default factories.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		workspaceFactory: workspace.NewManager,
		recorder:         metrics.NoopRecorder{},
	}
}

// WithWorkspaceFactory allows injecting a custom workspace factory (for testing).
func (s *DefaultBuildService) WithWorkspaceFactory(factory func(outputDir string) *workspace.Manager) *DefaultBuildService {
	s.workspaceFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Run executes one full build pass.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{
		ID:        uuid.NewString(),
		StartTime: startTime,
	}
	ctx = observability.WithBuildID(ctx, result.ID)

	err := s.run(ctx, req, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)
	s.recorder.ObserveBuildDuration(result.Duration)
	s.recorder.AddPages(result.Pages)
	s.recorder.AddIndexes(result.Indexes)
	s.recorder.AddAssets(result.Assets)
	s.recorder.AddSkippedPages(len(result.Skipped))
	s.recorder.AddHighlightedBlocks(result.HighlightedBlocks)

	switch {
	case err == nil:
		result.Status = BuildStatusSuccess
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		observability.InfoContext(ctx, "Build completed",
			logfields.Output(result.OutputPath),
			logfields.Pages(result.Pages),
			logfields.Indexes(result.Indexes),
			logfields.Assets(result.Assets),
			logfields.Skipped(len(result.Skipped)),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.Status = BuildStatusCancelled
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeCancelled)
		observability.WarnContext(ctx, "Build cancelled")
	default:
		result.Status = BuildStatusFailed
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	return result, err
}

func (s *DefaultBuildService) run(ctx context.Context, req BuildRequest, result *BuildResult) error {
	cfg := req.Config
	if cfg == nil {
		return ferrors.ConfigError("config required").Build()
	}
	contentRoot := cfg.ContentPath()
	result.OutputPath = cfg.OutputPath()

	info, err := os.Stat(contentRoot)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "content directory is not readable").
			Fatal().WithPath(contentRoot).Build()
	}
	if !info.IsDir() {
		return ferrors.ConfigError("content path is not a directory").WithPath(contentRoot).Build()
	}

	// Templates
	phaseStart := time.Now()
	ctx = observability.WithPhase(ctx, metrics.PhaseTemplates)
	engine, err := templates.Load(cfg.TemplatePath())
	if err != nil {
		return err
	}
	s.recorder.ObservePhaseDuration(metrics.PhaseTemplates, time.Since(phaseStart))
	observability.DebugContext(ctx, "Loaded templates", logfields.Path(engine.Root()))

	ws := s.workspaceFactory(result.OutputPath)
	if err := ws.Create(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to create staging directory").
			Fatal().WithPath(result.OutputPath).Build()
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			observability.WarnContext(ctx, "Failed to cleanup staging directory", logfields.Error(err))
		}
	}()

	w := &walker{
		ctx:       ctx,
		templates: engine,
		site:      page.Site{Title: cfg.Title, Tagline: cfg.Tagline, Domain: cfg.Domain},
		strict:    cfg.IsStrict(),
		claims:    make(map[string]string),
		result:    result,
	}
	w.resolver = paths.NewResolver(contentRoot, ws.GetPath())
	md := markdown.New()
	w.pages = page.NewBuilder(w.resolver, md, engine, w.site)

	// Static assets
	phaseStart = time.Now()
	ctx = observability.WithPhase(ctx, metrics.PhaseStatic)
	staticRoot := filepath.Join(engine.Root(), templates.StaticDir)
	if st, err := os.Stat(staticRoot); err == nil && st.IsDir() {
		n, err := copyTree(staticRoot, filepath.Join(ws.GetPath(), templates.StaticDir), func(src, dst string) error {
			return w.claim(dst, src)
		})
		if err != nil {
			return err
		}
		result.Assets += n
		observability.DebugContext(ctx, "Copied static assets", logfields.Assets(n))
	}
	s.recorder.ObservePhaseDuration(metrics.PhaseStatic, time.Since(phaseStart))

	// Content walk
	phaseStart = time.Now()
	w.ctx = observability.WithPhase(ctx, metrics.PhaseWalk)
	_, walkErr := w.walk(contentRoot)
	result.HighlightedBlocks = int(md.HighlightedBlocks())
	if walkErr != nil {
		return walkErr
	}
	s.recorder.ObservePhaseDuration(metrics.PhaseWalk, time.Since(phaseStart))

	// Commit
	phaseStart = time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ws.Commit(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryIO, "failed to replace output directory").
			Fatal().WithPath(result.OutputPath).WithContext("op", "swap").Build()
	}
	s.recorder.ObservePhaseDuration(metrics.PhaseCommit, time.Since(phaseStart))
	return nil
}
