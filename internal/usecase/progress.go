package usecase

import "context"

// ReplayStage is a step of rebuilding the council from its journal
type ReplayStage string

const (
	StageLoading   ReplayStage = "loading"
	StageVerifying ReplayStage = "verifying"
	StageReplaying ReplayStage = "replaying"
	StageReady     ReplayStage = "ready"
)

// ProgressEvent reports how far a journal replay has got
type ProgressEvent struct {
	Stage   ReplayStage
	Message string
	Entries int
	Spinner bool
}

// ProgressSink receives progress events. Sinks must not block.
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
}
