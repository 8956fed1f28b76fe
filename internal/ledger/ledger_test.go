package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

func TestLedgerAggregatesOutcomes(t *testing.T) {
	l := New()
	log := zap.NewNop()

	l.Record(log, types.RunOutcome{Dir: "/ens/F_0.01-k_0.05"})
	l.Record(log, types.RunOutcome{Dir: "/ens/F_0.01-k_0.1"})
	l.Record(log, types.RunOutcome{
		Dir:      "/ens/F_0.02-k_0.05",
		ExitCode: 1,
		Err:      errors.New("simulation exited with non-zero status"),
	})

	rep := l.Report()
	assert.Equal(t, 2, rep.Completed)
	assert.Equal(t, 1, rep.Failed)
	assert.Len(t, rep.Failures, 1)
	assert.Equal(t, "/ens/F_0.02-k_0.05", rep.Failures[0].Dir)
}

func TestStartDrainsChannelUntilClose(t *testing.T) {
	l := New()
	outcomes := make(chan types.RunOutcome, 4)
	var wg sync.WaitGroup
	l.Start(zap.NewNop(), outcomes, &wg)

	for i := 0; i < 4; i++ {
		outcomes <- types.RunOutcome{Dir: "run"}
	}
	close(outcomes)
	wg.Wait()

	assert.Equal(t, 4, l.Report().Completed)
}
