package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/council/internal/usecase"
)

// SpinnerSink shows journal replay progress with a spinner on a terminal
type SpinnerSink struct {
	spinner *spinner.Spinner
	started time.Time
}

// NewSpinnerSink creates a spinner sink writing to w
func NewSpinnerSink(w io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
	}
}

// OnProgress updates the spinner for each replay stage
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage == usecase.StageLoading {
		r.started = time.Now()
	}

	if !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	r.spinner.Suffix = " " + r.describe(event)
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) describe(event usecase.ProgressEvent) string {
	stageColor := color.New(color.FgYellow)
	label := fmt.Sprintf("● %s", stageColor.Sprint(event.Message))
	if event.Entries > 0 {
		label += color.New(color.Faint).Sprintf(" (%d entries, %s)", event.Entries, time.Since(r.started).Round(time.Millisecond))
	}
	return label
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
