package incremental

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/viant/gdlang/internal/gderrors"
)

// AnalyzeFunc analyzes one file, returning whatever result the caller
// wants collected (a semantic.FileModel, a diagnostic list, ...).
type AnalyzeFunc func(ctx context.Context, path string) (interface{}, error)

// Scheduler runs AnalyzeFunc over a batch of files, sequentially or with a
// bounded degree of parallelism, honoring cancellation between files: a
// canceled context stops dispatching new work and returns a typed
// Canceled error rather than a raw context.Canceled.
type Scheduler struct {
	// Degree controls concurrency: 0 or negative means sequential,
	// positive caps concurrent analyses at that count, -1 specifically
	// means one worker per CPU (runtime.NumCPU).
	Degree int
}

// resolveDegree turns the user-facing Degree knob into an actual
// concurrency cap: <=0 (other than the -1 sentinel) means sequential.
func (s *Scheduler) resolveDegree() int {
	switch {
	case s.Degree == -1:
		return runtime.NumCPU()
	case s.Degree > 0:
		return s.Degree
	default:
		return 1
	}
}

// Result pairs one file's path with its AnalyzeFunc outcome.
type Result struct {
	Path  string
	Value interface{}
	Err   error
}

// AnalyzeAll runs fn over every path, synchronously, returning one Result
// per path in input order. This is the API's default: deterministic
// ordering, no goroutine overhead for small batches.
func (s *Scheduler) AnalyzeAll(ctx context.Context, paths []string, fn AnalyzeFunc) ([]Result, error) {
	results := make([]Result, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, gderrors.NewCanceled(err)
		}
		v, err := fn(ctx, p)
		results[i] = Result{Path: p, Value: v, Err: err}
	}
	return results, nil
}

// AnalyzeAllAsync dispatches fn over paths to a bounded worker pool sized
// by Degree, preserving the two-pass discipline the caller's fn is expected
// to follow internally (parse-and-declare, then resolve-and-validate): the
// scheduler itself only fans the per-file work out and back in, it does not
// impose pass ordering across files.
func (s *Scheduler) AnalyzeAllAsync(ctx context.Context, paths []string, fn AnalyzeFunc) ([]Result, error) {
	degree := s.resolveDegree()
	if degree <= 1 {
		return s.AnalyzeAll(ctx, paths, fn)
	}

	results := make([]Result, len(paths))
	sem := semaphore.NewWeighted(int64(degree))
	g, gctx := errgroup.WithContext(ctx)

	for i, p := range paths {
		i, p := i, p
		if err := sem.Acquire(gctx, 1); err != nil {
			return results, gderrors.NewCanceled(err)
		}
		g.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return gderrors.NewCanceled(err)
			}
			v, err := fn(gctx, p)
			results[i] = Result{Path: p, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
