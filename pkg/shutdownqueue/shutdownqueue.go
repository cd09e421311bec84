// Package shutdownqueue runs cleanup tasks in LIFO order when a process stops.
//
// Binaries usually use the process-wide queue through Add and Shutdown:
//
//	defer func() {
//		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//		defer cancel()
//		_ = shutdownqueue.Shutdown(ctx)
//	}()
//
// Tasks run once, in reverse order of registration. Panics are recovered.
// Shutdown is idempotent and returns an aggregated error via errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it can't finish (or ctx is canceled).
type Task func(ctx context.Context) error

type named struct {
	name string
	run  Task
}

// Queue holds shutdown tasks. The zero value is ready to use.
type Queue struct {
	mu     sync.Mutex
	tasks  []named
	closed bool
}

var std = &Queue{}

// Add registers t on the process-wide queue.
func Add(t Task) { std.Add(t) }

// AddNamed registers t on the process-wide queue under a name used in logs and errors.
func AddNamed(name string, t Task) { std.AddNamed(name, t) }

// Shutdown drains the process-wide queue.
func Shutdown(ctx context.Context) error { return std.Shutdown(ctx) }

// Add registers a task to be run on Shutdown, in LIFO order.
// If t is nil or shutdown has already started, Add does nothing.
func (q *Queue) Add(t Task) {
	q.AddNamed("", t)
}

func (q *Queue) AddNamed(name string, t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, named{name: name, run: t})
}

// Shutdown drains all registered tasks in LIFO order.
// After the first run, subsequent calls are no-ops.
//
// If ctx is canceled or times out mid-drain, Shutdown stops early and returns
// the context error joined with any task errors so far.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.closed && len(q.tasks) == 0 {
		q.mu.Unlock()

		return nil
	}

	q.closed = true
	tasks := q.tasks
	q.tasks = nil

	q.mu.Unlock()

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, tasks[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t named) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task %s: %v", t.label(), r)
		}
	}()

	if t.name != "" {
		slog.InfoContext(ctx, "shutting down", slog.String("task", t.name))
	}

	err = t.run(ctx)
	if err != nil && t.name != "" {
		return fmt.Errorf("%s: %w", t.name, err)
	}

	return err
}

func (t named) label() string {
	if t.name == "" {
		return "(unnamed)"
	}

	return t.name
}
