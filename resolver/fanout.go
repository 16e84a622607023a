package resolver

import (
	"context"
	"errors"

	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

// Task is one independent source of a fan-out.
type Task[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Result is what a task produced. Value is absent when the task failed or missed the budget.
type Result[T any] struct {
	Name  string
	Value mo.Option[T]
	Err   error
}

// errLate is the cancellation cause of a fan-out whose wait budget ran out. Calls cut off by it
// count as endpoint timeouts; calls cut off by the caller do not.
var errLate = errors.New("wait budget expired")

type finished[T any] struct {
	index int
	value T
	err   error
}

// FanOut runs tasks on at most Options.Workers goroutines and waits up to Options.Budget.
// Tasks still running when the budget expires are cancelled and their results discarded.
// Results already delivered when it expires are kept.
//
// Results come back in task order, which is priority order, whatever order tasks completed in.
func FanOut[T any](ctx context.Context, e *Engine, operation string, tasks []Task[T]) []Result[T] {
	ctx, cancel := context.WithTimeoutCause(ctx, e.opts.Budget, errLate)
	defer cancel()

	// Buffered so stragglers never block once nobody is listening.
	done := make(chan finished[T], len(tasks))

	go func() {
		var g errgroup.Group
		g.SetLimit(e.opts.Workers)
		for i, task := range tasks {
			g.Go(func() error {
				if ctx.Err() != nil {
					done <- finished[T]{index: i, err: context.Cause(ctx)}
					return nil
				}
				value, err := task.Run(ctx)
				done <- finished[T]{index: i, value: value, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()

	results := make([]Result[T], len(tasks))
	for i, task := range tasks {
		results[i] = Result[T]{Name: task.Name, Value: mo.None[T](), Err: errLate}
	}

	collect := func(f finished[T]) {
		if f.err != nil {
			results[f.index].Err = f.err
			e.opts.Metrics.Task(operation, "failed")
			return
		}
		results[f.index].Value = mo.Some(f.value)
		results[f.index].Err = nil
		e.opts.Metrics.Task(operation, "ok")
	}

	gather(ctx, done, len(tasks), collect)

	for _, r := range results {
		if r.Err == errLate {
			e.opts.Metrics.Task(operation, "late")
		}
	}
	return results
}

// gather passes finished tasks to collect until pending have reported or ctx is done.
// Whatever is already buffered in done when ctx ends is still collected.
func gather[T any](ctx context.Context, done <-chan finished[T], pending int, collect func(finished[T])) {
	for ; pending > 0; pending-- {
		select {
		case f := <-done:
			collect(f)
		case <-ctx.Done():
			for ; pending > 0; pending-- {
				select {
				case f := <-done:
					collect(f)
				default:
					return
				}
			}
			return
		}
	}
}

// values returns the present values in priority order.
func values[T any](results []Result[T]) []T {
	var out []T
	for _, r := range results {
		if v, ok := r.Value.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

// firstError returns the error of the highest-priority task that failed.
func firstError[T any](results []Result[T]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
