package operations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mplosser/data-fry9/pkg/contracts/domain"
)

// ConvertFunc converts one filing and returns its result. Implementations
// must confine failures to the returned FileResult.
type ConvertFunc func(ctx context.Context, filing domain.RawFiling) FileResult

// Dispatcher fans independent per-file conversion tasks out across a
// bounded worker pool. Tasks share no mutable state and write to disjoint
// output paths, so no synchronization beyond the pool itself is needed.
type Dispatcher struct {
	workers int
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher with the given pool size. A size of
// one (or less) runs strictly sequentially.
func NewDispatcher(workers int, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{workers: workers, logger: logger}
}

// Run processes every filing and returns one result per filing, sorted by
// filename so aggregation order never depends on scheduling. One task's
// failure never cancels its siblings; context cancellation stops the
// dispatch of tasks that have not started yet.
func (d *Dispatcher) Run(ctx context.Context, filings []domain.RawFiling, convert ConvertFunc) []FileResult {
	d.logger.Info("dispatching conversion tasks",
		slog.Int("files", len(filings)),
		slog.Int("workers", d.workers))

	var results []FileResult
	if d.workers == 1 {
		results = d.runSequential(ctx, filings, convert)
	} else {
		results = d.runParallel(ctx, filings, convert)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Filing.Name < results[j].Filing.Name
	})
	return results
}

func (d *Dispatcher) runSequential(ctx context.Context, filings []domain.RawFiling, convert ConvertFunc) []FileResult {
	results := make([]FileResult, 0, len(filings))
	for _, filing := range filings {
		if ctx.Err() != nil {
			break
		}
		results = append(results, d.runTask(ctx, filing, convert))
	}
	return results
}

func (d *Dispatcher) runParallel(ctx context.Context, filings []domain.RawFiling, convert ConvertFunc) []FileResult {
	resultsChan := make(chan FileResult, len(filings))
	semaphore := make(chan struct{}, d.workers)
	var wg sync.WaitGroup

	for _, filing := range filings {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(filing domain.RawFiling) {
			defer wg.Done()

			// Acquire semaphore for concurrency control
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			resultsChan <- d.runTask(ctx, filing, convert)
		}(filing)
	}

	wg.Wait()
	close(resultsChan)

	results := make([]FileResult, 0, len(filings))
	for result := range resultsChan {
		results = append(results, result)
	}
	return results
}

// runTask executes one conversion with panic isolation: a panicking task
// becomes a failed FileResult instead of taking the run down.
func (d *Dispatcher) runTask(ctx context.Context, filing domain.RawFiling, convert ConvertFunc) (result FileResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("conversion task panicked",
				slog.Any("panic", r),
				slog.String("file", filing.Name))
			result = FileResult{
				Filing: filing,
				Err:    fmt.Errorf("conversion panicked: %v", r),
			}
		}
	}()

	return convert(ctx, filing)
}
