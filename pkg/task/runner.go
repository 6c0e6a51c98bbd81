package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/osinstall/nfs-source/pkg/observability"
)

// Runner executes tasks strictly in order, stopping at the first
// failure. The tasks of one source share a single mount location, and
// concurrent mount/unmount against the same path is undefined, so a
// source's tasks must all go through the same runner.
type Runner struct {
	metrics *observability.Metrics
}

// NewRunner creates a task runner. metrics may be nil to disable
// instrumentation.
func NewRunner(metrics *observability.Metrics) *Runner {
	return &Runner{metrics: metrics}
}

// RunAll executes the given tasks sequentially. The first failing
// task's error is returned wrapped with the task name; remaining tasks
// are not started. A cancelled context stops the sequence before the
// next task, never mid-task.
func (r *Runner) RunAll(ctx context.Context, tasks []Task) error {
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("task sequence aborted before %q: %w", t.Name(), err)
		}

		runID := uuid.New().String()
		klog.V(2).Infof("Starting task %q (run %s)", t.Name(), runID)

		start := time.Now()
		err := t.Run(ctx)
		elapsed := time.Since(start)

		if r.metrics != nil {
			r.metrics.RecordTask(t.Name(), err, elapsed)
		}

		if err != nil {
			klog.Errorf("Task %q failed after %s (run %s): %v", t.Name(), elapsed, runID, err)
			return fmt.Errorf("task %q: %w", t.Name(), err)
		}

		klog.V(2).Infof("Task %q finished in %s (run %s)", t.Name(), elapsed, runID)
	}
	return nil
}
