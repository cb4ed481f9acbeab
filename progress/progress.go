// Package progress provides console progress indication for long-running
// cycle stages. It is a UX concern only and must never gate the pipeline's
// control flow.
package progress

import (
	"time"

	"github.com/briandowns/spinner"
)

// Reporter indicates an ongoing action on the console.
type Reporter interface {
	Start(label string)
	Stop()
}

// SpinnerReporter animates a console spinner while a stage runs.
type SpinnerReporter struct {
	s *spinner.Spinner
}

// NewSpinnerReporter creates a spinner-backed Reporter.
func NewSpinnerReporter() *SpinnerReporter {
	return &SpinnerReporter{
		s: spinner.New(spinner.CharSets[9], 100*time.Millisecond),
	}
}

var _ Reporter = (*SpinnerReporter)(nil)

// Start begins animating with the given label. Starting over a running
// spinner just swaps the label.
func (r *SpinnerReporter) Start(label string) {
	r.s.Suffix = " " + label
	if !r.s.Active() {
		r.s.Start()
	}
}

// Stop halts the animation.
func (r *SpinnerReporter) Stop() {
	r.s.Stop()
}

// Noop is a Reporter that does nothing, for tests and non-interactive runs.
type Noop struct{}

var _ Reporter = Noop{}

func (Noop) Start(string) {}
func (Noop) Stop()        {}
