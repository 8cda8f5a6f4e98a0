package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snapdown/snapexport/tabsource"
)

// Runner drives the pipeline over the data rows of a parsed export table:
// parse each row, confirm with the operator, accumulate, serialise, save.
//
// A run is single-threaded; the only suspension point is the Confirm call,
// which blocks until the operator answers. Aborting there is all-or-nothing
// by design: records accepted earlier in the run are discarded and no
// artifact is written. The export is a review gate, not a checkpointed job.
type Runner struct {
	logger    *slog.Logger
	confirmer Confirmer
	sink      Sink
	notify    ProgressFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgressFunc replaces the default progress notification (an Info log
// line per 5% threshold crossed in bulk mode).
func WithProgressFunc(fn ProgressFunc) Option {
	return func(r *Runner) { r.notify = fn }
}

// New creates a Runner. Nil arguments fall back to slog.Default, a terminal
// confirmer on stdin/stdout, and a FileSink in the current directory.
func New(logger *slog.Logger, confirmer Confirmer, sink Sink, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if confirmer == nil {
		confirmer = NewTermConfirmer(nil, nil)
	}
	if sink == nil {
		sink = FileSink{}
	}
	r := &Runner{logger: logger, confirmer: confirmer, sink: sink}
	r.notify = func(thresholdPct, accepted, total int) {
		r.logger.Info("export: progress",
			"threshold_pct", thresholdPct, "accepted", accepted, "total", total)
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run processes rows in document order. Rows the parser rejects are logged
// and skipped. Unless the operator cancels, the accepted records are
// serialised and saved through the sink, even when some rows failed.
// Cancellation returns a Result with Cancelled set and a nil error.
func (r *Runner) Run(ctx context.Context, rows []tabsource.Row) (*Result, error) {
	st := &state{mode: ModePrompt, total: len(rows)}
	prog := &progress{total: len(rows), notify: r.notify}
	var accepted []Record

	for i, row := range rows {
		rec, err := parseRecord(row)
		if err != nil {
			st.failed++
			r.logger.Warn("export: row skipped",
				"row", i, "reason", err.Error(), "cells", cellText(row), "raw", rawCells(row))
			continue
		}

		prompted := st.mode == ModePrompt
		if prompted {
			dec, err := r.confirmer.Confirm(ctx, Confirmation{Index: i, Total: st.total, Record: rec})
			if err != nil {
				return nil, fmt.Errorf("export: confirm row %d: %w", i, err)
			}
			switch dec {
			case DecisionAbort:
				r.logger.Info("export: cancelled by operator",
					"row", i, "accepted_so_far", st.processed)
				return &Result{Total: st.total, Accepted: st.processed, Failed: st.failed, Cancelled: true}, nil
			case DecisionAcceptAll:
				st.mode = ModeAuto
			}
		}

		accepted = append(accepted, rec)
		st.processed++
		if !prompted {
			prog.observe(st.processed)
		}
	}

	r.logger.Info("export: complete",
		"rows", st.total, "accepted", st.processed, "failed", st.failed)

	art := Artifact{Name: ArtifactName, ContentType: ArtifactContentType, Data: MarshalCSV(accepted)}
	if err := r.sink.Save(ctx, art); err != nil {
		return nil, fmt.Errorf("export: save artifact: %w", err)
	}

	return &Result{Total: st.total, Accepted: st.processed, Failed: st.failed, Records: accepted}, nil
}
