package launcher

import (
	"strconv"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/sched"
)

// BuildLaunchCommand returns the argv prefix that launches rankCount
// cooperating processes for one run. Under a cluster scheduler the run is
// confined to a single node; otherwise a generic mpirun invocation is used.
// Deterministic and side-effect free.
func BuildLaunchCommand(rankCount int, hasScheduler bool) []string {
	n := strconv.Itoa(rankCount)
	if hasScheduler {
		return []string{"srun", "-n", n, "-N", "1"}
	}
	return []string{"mpirun", "-np", n}
}

// MPI picks the launch command from the scheduler environment, requesting one
// rank per CPU visible on the node.
type MPI struct {
	Env sched.Environment
}

func (m MPI) LaunchCommand() []string {
	return BuildLaunchCommand(m.Env.CPUCount(), m.Env.HasScheduler())
}

// Serial runs the executable directly with no parallel wrapper. Useful for
// smoke-testing a campaign on a machine without an MPI installation.
type Serial struct{}

func (Serial) LaunchCommand() []string { return nil }
