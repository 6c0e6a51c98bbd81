// Package task defines one-shot installation tasks and a sequential
// runner that executes them.
package task

import "context"

// Task is a single one-shot unit of installation work. An instance is
// run at most once and then discarded; its inputs are captured at
// construction.
type Task interface {
	// Name returns a stable, human-readable label for progress reporting.
	Name() string

	// Run performs the task's single operation. Run blocks until the
	// underlying OS call completes or fails; there is no cancellation
	// mid-call, so the context is only consulted between operations.
	Run(ctx context.Context) error
}
