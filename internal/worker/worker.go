package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/executor"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/queue"
	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// startOne runs a single worker goroutine. The worker cycles between idle
// (blocked on the queue) and running (blocked on one external process) until
// it pops a termination token. A cancelled ctx stops it between runs; an
// in-flight simulation is never interrupted.
func startOne(
	ctx context.Context,
	log *zap.Logger,
	id int,
	q *queue.Queue[types.Message],
	exec *executor.Executor,
	outcomes chan<- types.RunOutcome,
	wg *sync.WaitGroup,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case <-ctx.Done():
				log.Info("worker stopping on shutdown", zap.Int("worker", id))
				return
			default:
			}

			msg := q.Pop()
			if msg.Terminate {
				log.Info("worker terminated", zap.Int("worker", id))
				return
			}

			out := exec.Execute(msg.Item)
			out.WorkerID = id
			outcomes <- out
		}
	}()
}

// Spawn launches n workers with IDs 0..n-1 sharing one queue. One guaranteed
// termination token per worker must eventually be pushed for them to exit.
func Spawn(
	ctx context.Context,
	log *zap.Logger,
	n int,
	q *queue.Queue[types.Message],
	exec *executor.Executor,
	outcomes chan<- types.RunOutcome,
	wg *sync.WaitGroup,
) {
	for i := 0; i < n; i++ {
		startOne(ctx, log, i, q, exec, outcomes, wg)
	}
}
