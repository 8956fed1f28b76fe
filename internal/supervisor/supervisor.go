package supervisor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/config"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/executor"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/generator"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/ledger"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/queue"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/sched"
	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/worker"
	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// Supervisor drives one full campaign: a pool of exactly one worker per
// allocated node fed from a shared queue, with one termination token per
// worker pushed only after the whole grid has been enqueued.
type Supervisor struct {
	log      *zap.Logger
	settings *config.JobSettings
	env      sched.Environment
	exec     *executor.Executor

	tallies generator.Tallies
	ledger  *ledger.Ledger
}

func New(log *zap.Logger, settings *config.JobSettings, env sched.Environment, exec *executor.Executor) *Supervisor {
	return &Supervisor{log: log, settings: settings, env: env, exec: exec}
}

// Run blocks until every worker has exited and every outcome is recorded.
// Individual run failures are contained; Run itself only reports them.
func (s *Supervisor) Run(ctx context.Context, template types.RunConfig) ledger.Report {
	nodeCount := s.env.NodeCount()
	q := queue.New[types.Message]()
	outcomes := make(chan types.RunOutcome, nodeCount)

	var workers sync.WaitGroup
	worker.Spawn(ctx, s.log, nodeCount, q, s.exec, outcomes, &workers)
	s.log.Info("workers started", zap.Int("count", nodeCount))

	s.ledger = ledger.New()
	var collect sync.WaitGroup
	s.ledger.Start(s.log, outcomes, &collect)

	generator.Enumerate(s.log, template, s.settings.Sweep, s.settings.EnsembleRoot,
		&s.tallies, func(item types.WorkItem) {
			q.Push(types.Message{Item: item})
		})

	// Tokens go on the queue only after all real work: no worker can
	// terminate while work remains unclaimed.
	for i := 0; i < nodeCount; i++ {
		q.Push(types.Message{Terminate: true})
	}

	workers.Wait()
	close(outcomes)
	collect.Wait()

	rep := s.ledger.Report()
	s.log.Info("campaign finished",
		zap.Int64("generated", s.tallies.Generated.Load()),
		zap.Int64("skipped", s.tallies.Skipped.Load()),
		zap.Int("completed", rep.Completed),
		zap.Int("failed", rep.Failed))
	return rep
}

// Tallies exposes the generator counts for reporting.
func (s *Supervisor) Tallies() (generated, skipped int64) {
	return s.tallies.Generated.Load(), s.tallies.Skipped.Load()
}
