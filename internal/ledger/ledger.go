package ledger

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// Ledger aggregates per-run outcomes into a process-wide report. A failed
// run is logged with its directory and exit code and counted; it never
// affects the rest of the sweep.
type Ledger struct {
	mu        sync.Mutex
	completed int
	failed    int
	failures  []types.RunOutcome
}

// Report is a snapshot of the ledger totals.
type Report struct {
	Completed int
	Failed    int
	Failures  []types.RunOutcome
}

func New() *Ledger {
	return &Ledger{}
}

// Start consumes outcomes until the channel closes, then signals wg.
func (l *Ledger) Start(log *zap.Logger, outcomes <-chan types.RunOutcome, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for out := range outcomes {
			l.Record(log, out)
		}
	}()
}

func (l *Ledger) Record(log *zap.Logger, out types.RunOutcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if out.Err != nil {
		l.failed++
		l.failures = append(l.failures, out)
		log.Warn("run failed",
			zap.String("dir", out.Dir),
			zap.Int("worker", out.WorkerID),
			zap.Int("exit_code", out.ExitCode),
			zap.Error(out.Err))
		return
	}
	l.completed++
	log.Info("run completed",
		zap.String("dir", out.Dir),
		zap.Int("worker", out.WorkerID),
		zap.Duration("duration", out.Duration))
}

func (l *Ledger) Report() Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Report{
		Completed: l.completed,
		Failed:    l.failed,
		Failures:  append([]types.RunOutcome(nil), l.failures...),
	}
}
