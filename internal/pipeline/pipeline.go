// Package pipeline runs the scheduled jobs against the pipeline API:
// realizing due recurring templates and recording net worth snapshots.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ledgerline/internal/client"
)

// API defines the pipeline operations the runner needs.
type API interface {
	RealizeDue(ctx context.Context, today string) (*client.RealizeResult, error)
	ComputeSnapshots(ctx context.Context, recordedAt string) (*client.SnapshotResult, error)
}

// Options controls a run. An empty Date lets the server pick its own date.
type Options struct {
	Date          string
	SkipSnapshots bool
}

// RunResult contains the outcome of a pipeline run.
type RunResult struct {
	Date              string
	Templates         int
	Created           int
	SnapshotsRecorded int
	SnapshotErr       error
	Duration          time.Duration
}

// Runner realizes templates and then records snapshots.
type Runner struct {
	api    API
	logger *zap.SugaredLogger
}

// NewRunner creates a Runner.
func NewRunner(api API, logger *zap.SugaredLogger) *Runner {
	return &Runner{api: api, logger: logger}
}

// Run executes one cycle. Realization failures abort the run; snapshot
// failures are reported on the result so the realized rows still count.
// Snapshots are taken after realization so they include today's occurrences.
func (r *Runner) Run(ctx context.Context, opts Options) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{Date: opts.Date}

	realized, err := r.api.RealizeDue(ctx, opts.Date)
	if err != nil {
		return nil, err
	}
	result.Templates = realized.Templates
	result.Created = realized.Created
	if realized.Today != "" {
		result.Date = realized.Today
	}
	r.logger.Infow("realized recurring templates",
		"date", result.Date,
		"templates", realized.Templates,
		"created", realized.Created,
	)

	if !opts.SkipSnapshots {
		snapshots, err := r.api.ComputeSnapshots(ctx, result.Date)
		if err != nil {
			r.logger.Warnw("failed to compute snapshots", "error", err)
			result.SnapshotErr = err
		} else {
			result.SnapshotsRecorded = snapshots.SnapshotsRecorded
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}
