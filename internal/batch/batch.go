// Package batch converts many coordinates concurrently and writes the
// results as a table, CSV or GeoJSON.
package batch

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fsevo/geoconv/internal/convert"
)

// Options holds batch conversion configuration.
type Options struct {
	Concurrency int
	Progress    bool // draw a progress tracker on stderr
	Verbose     bool
}

// Outcome pairs an input record with its conversion result.
type Outcome struct {
	Record Record
	Result convert.Result
	Err    error
}

// Stats holds conversion statistics.
type Stats struct {
	Total     int64
	Converted int64
	Failed    int64
}

// Run converts all records and returns the outcomes in input order. A
// failing record does not stop the batch; its error is kept in the Outcome.
// Run only returns an error when ctx is cancelled.
func Run(ctx context.Context, opts Options, records []Record) ([]Outcome, Stats, error) {
	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}

	outcomes := make([]Outcome, len(records))
	var converted, failed atomic.Int64

	var pb *progressReporter
	if opts.Progress && len(records) > 0 {
		pb = startProgress(os.Stderr, "Converting", int64(len(records)))
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec := records[i]
				out := Outcome{Record: rec, Err: rec.Err}
				if out.Err == nil {
					out.Result, out.Err = convert.Convert(rec.Req)
				}
				if out.Err != nil {
					failed.Add(1)
					if opts.Verbose {
						log.Printf("line %d: %v", rec.Line, out.Err)
					}
				} else {
					converted.Add(1)
				}
				outcomes[i] = out
				if pb != nil {
					pb.Record(out.Err)
				}
			}
		}()
	}

	// Feed jobs.
	var err error
feed:
	for i := range records {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if pb != nil {
		pb.Finish()
	}

	stats := Stats{
		Total:     int64(len(records)),
		Converted: converted.Load(),
		Failed:    failed.Load(),
	}
	if err != nil {
		return nil, stats, err
	}
	return outcomes, stats, nil
}
