package suffixlcp

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// BuildAll indexes every text with the same options, running at most
// opts.Workers builds at a time. Indexes share nothing, so the only
// coordination is the worker limit. The result is in input order.
func BuildAll(ctx context.Context, texts [][]byte, opts Options) ([]*Index, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	indexes := make([]*Index, len(texts))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, text := range texts {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx, err := build(text, opts)
			if err != nil {
				return errors.Wrapf(err, "Failed to build index %d", i)
			}
			indexes[i] = idx
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		opts.Logger.DebugWith("Built suffix indexes", "count", len(texts), "workers", workers)
	}
	return indexes, nil
}
