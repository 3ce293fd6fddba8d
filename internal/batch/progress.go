package batch

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// progressReporter draws one go-pretty tracker for a batch. The tracker
// message carries the running failure count; Finish prints the totals.
type progressReporter struct {
	out      io.Writer
	label    string
	total    int64
	pw       progress.Writer
	tracker  *progress.Tracker
	failed   atomic.Int64
	mu       sync.Mutex
	shown    int64 // failure count currently in the tracker message
	rendered chan struct{}
}

func startProgress(out io.Writer, label string, total int64) *progressReporter {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(30)
	pw.SetMessageLength(len(label) + 16)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Speed = true
	pw.Style().Visibility.TrackerOverall = false

	p := &progressReporter{
		out:   out,
		label: label,
		total: total,
		pw:    pw,
		tracker: &progress.Tracker{
			Message: label,
			Total:   total,
			Units: progress.Units{
				Notation:         " points",
				NotationPosition: progress.UnitsNotationPositionAfter,
			},
		},
		rendered: make(chan struct{}),
	}
	// The tracker must be queued before Render starts, or auto-stop ends
	// rendering on the first tick.
	pw.AppendTracker(p.tracker)
	go func() {
		defer close(p.rendered)
		pw.Render()
	}()
	return p
}

// Record counts one converted record. Safe for concurrent use.
func (p *progressReporter) Record(err error) {
	if err != nil {
		n := p.failed.Add(1)
		p.mu.Lock()
		if n > p.shown {
			p.shown = n
			p.tracker.UpdateMessage(fmt.Sprintf("%s (%d failed)", p.label, n))
		}
		p.mu.Unlock()
	}
	p.tracker.Increment(1)
}

// Finish completes the tracker, waits for the final frame and prints the
// converted and failed totals. A cancelled batch reports what was processed.
func (p *progressReporter) Finish() {
	p.tracker.MarkAsDone()
	<-p.rendered

	failed := p.failed.Load()
	converted := p.tracker.Value() - failed
	fmt.Fprintf(p.out, "Converted %d of %d points, %d failed\n", converted, p.total, failed)
}
