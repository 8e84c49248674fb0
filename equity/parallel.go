package equity

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// chunkRunner executes one chunk into an exclusively owned tally.
type chunkRunner interface {
	runChunk(c chunk, t *tally) error
}

// runSequential executes every chunk on the calling goroutine.
func runSequential(ctx context.Context, run chunkRunner, chunks []chunk, participants int) ([]tally, error) {
	tallies := make([]tally, len(chunks))
	for j, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("equity computation cancelled: %w", err)
		}
		tallies[j] = newTally(participants)
		if err := run.runChunk(c, &tallies[j]); err != nil {
			return nil, err
		}
	}
	return tallies, nil
}

// runParallel executes chunks on a fixed pool of workers. Worker w takes
// chunks w, w+workers, w+2*workers and so on, writing each into its own
// slot, so no tally is shared between goroutines. The first error cancels
// the remaining workers and fails the whole run.
func runParallel(ctx context.Context, run chunkRunner, chunks []chunk, participants, workers int) ([]tally, error) {
	tallies := make([]tally, len(chunks))
	workers = min(workers, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for j := w; j < len(chunks); j += workers {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("equity computation cancelled: %w", err)
				}
				t := newTally(participants)
				if err := run.runChunk(chunks[j], &t); err != nil {
					return err
				}
				tallies[j] = t
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tallies, nil
}
