package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

// BuildService is the canonical interface for executing site builds.
// The build and serve commands are thin wrappers over it.
type BuildService interface {
	// Run executes one full pass: templates → static assets → content walk → swap.
	// Returns a BuildResult with detailed outcomes and any error encountered.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a site build.
type BuildRequest struct {
	// Config is the loaded site configuration for this build.
	Config *config.Config
}

// SkippedPage records a content file left out of a lenient build.
type SkippedPage struct {
	Source string
	Err    error
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// ID identifies this pass in logs.
	ID string

	// Status indicates overall build outcome.
	Status BuildStatus

	// OutputPath is the output root the pass was committed to.
	OutputPath string

	// Pages is the count of content pages rendered.
	Pages int

	// Indexes is the count of directory index pages rendered.
	Indexes int

	// Assets is the count of files copied verbatim, static assets included.
	Assets int

	// Skipped lists pages dropped in lenient mode.
	Skipped []SkippedPage

	// HighlightedBlocks is the count of syntax-highlighted code blocks.
	HighlightedBlocks int

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed and was committed.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled before commit.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
