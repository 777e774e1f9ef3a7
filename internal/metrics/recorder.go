package metrics

import "time"

// BuildOutcomeLabel is the final status of one build pass.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess   BuildOutcomeLabel = "success"
	BuildOutcomeFailed    BuildOutcomeLabel = "failed"
	BuildOutcomeCancelled BuildOutcomeLabel = "cancelled"
)

// Phases of a build pass.
const (
	PhaseTemplates = "templates"
	PhaseStatic    = "static"
	PhaseWalk      = "walk"
	PhaseCommit    = "commit"
)

// Recorder defines observability hooks for builds and the preview server.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObservePhaseDuration(phase string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddPages(n int)
	AddIndexes(n int)
	AddAssets(n int)
	AddSkippedPages(n int)
	AddHighlightedBlocks(n int)
	IncRebuildTrigger()
	SetLiveReloadClients(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) AddPages(int)                               {}
func (NoopRecorder) AddIndexes(int)                             {}
func (NoopRecorder) AddAssets(int)                              {}
func (NoopRecorder) AddSkippedPages(int)                        {}
func (NoopRecorder) AddHighlightedBlocks(int)                   {}
func (NoopRecorder) IncRebuildTrigger()                         {}
func (NoopRecorder) SetLiveReloadClients(int)                   {}
