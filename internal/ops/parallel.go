package ops

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// parallel runs process over the entries of in using at most workers
// goroutines and forwards every entry once processed. Output order follows
// completion, not input.
func parallel(ctx context.Context, in <-chan *EntryInfo, workers int, process func(context.Context, *EntryInfo)) <-chan *EntryInfo {
	if workers < 1 {
		workers = 1
	}

	out := make(chan *EntryInfo, 10)

	go func() {
		defer close(out)

		var group errgroup.Group
		group.SetLimit(workers)
		defer group.Wait()

		for {
			// check the channels
			select {
			case <-ctx.Done():
				return
			case info, ok := <-in:
				if !ok {
					return
				}
				group.Go(func() error {
					process(ctx, info)
					send(ctx, out, info)
					return nil
				})
			}
		}
	}()

	return out
}

// send forwards info unless the operation has been cancelled.
func send(ctx context.Context, out chan<- *EntryInfo, info *EntryInfo) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- info:
		return true
	}
}
