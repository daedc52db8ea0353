package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/council/internal/usecase"
)

func TestSpinnerSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSpinnerSink(&buf)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageLoading, Message: "Loading journal", Spinner: true})
	assert.Contains(t, sink.spinner.Suffix, "Loading journal")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageReplaying, Message: "Replaying journal", Entries: 12, Spinner: true})
	assert.Contains(t, sink.spinner.Suffix, "Replaying journal")
	assert.Contains(t, sink.spinner.Suffix, "12 entries")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageReady})
	assert.False(t, sink.spinner.Active())
}
