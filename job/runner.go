package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/creativemill/taskops/observe"
)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// Logger logs job transitions. Nil disables logging.
	Logger observe.Logger
}

// Runner is the outermost wrapper around a job's work. It owns the
// record's transitions so that no run can leave a record RUNNING.
type Runner struct {
	cfg RunnerConfig
}

// NewRunner creates a Runner.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = observe.NopLogger()
	}
	return &Runner{cfg: cfg}
}

// Run executes fn against a PENDING record. The record is marked
// RUNNING before fn starts and ends COMPLETED with fn's summary or
// FAILED with a single-line error, panics included.
func (r *Runner) Run(ctx context.Context, rec *Record, fn func(ctx context.Context) (string, error)) error {
	if err := rec.Transition(StatusRunning); err != nil {
		return err
	}
	r.cfg.Logger.Info(ctx, "job started",
		observe.Field{Key: "job_id", Value: rec.ID.String()})

	summary, err := r.invoke(ctx, fn)
	if err != nil {
		rec.Error = summarizeError(err)
		if terr := rec.Transition(StatusFailed); terr != nil {
			return terr
		}
		r.cfg.Logger.Error(ctx, "job failed",
			observe.Field{Key: "job_id", Value: rec.ID.String()},
			observe.Field{Key: "error", Value: rec.Error})
		return err
	}

	rec.ResultSummary = summary
	if terr := rec.Transition(StatusCompleted); terr != nil {
		return terr
	}
	r.cfg.Logger.Info(ctx, "job completed",
		observe.Field{Key: "job_id", Value: rec.ID.String()},
		observe.Field{Key: "summary", Value: summary})
	return nil
}

func (r *Runner) invoke(ctx context.Context, fn func(ctx context.Context) (string, error)) (summary string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job: panic: %v", rec)
		}
	}()
	return fn(ctx)
}

// summarizeError flattens an error into the single line stored on the
// record.
func summarizeError(err error) string {
	line := strings.ReplaceAll(err.Error(), "\n", " ")
	return strings.Join(strings.Fields(line), " ")
}
