package sched

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment exposes the ambient scheduling environment. Injecting it keeps
// node-count resolution and launcher selection testable without mutating the
// real process environment.
type Environment interface {
	// NodeCount is the number of nodes allocated to this job, 1 if unknown.
	NodeCount() int
	// HasScheduler reports whether a cluster scheduler manages this process.
	HasScheduler() bool
	// CPUCount is the number of processing units visible on this node.
	CPUCount() int
}

// ProcessEnv senses the real process environment. Slurm is recognized by any
// environment variable in its SLURM namespace.
type ProcessEnv struct{}

func (ProcessEnv) NodeCount() int {
	if v, ok := os.LookupEnv("SLURM_JOB_NUM_NODES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func (ProcessEnv) HasScheduler() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SLURM") {
			return true
		}
	}
	return false
}

func (ProcessEnv) CPUCount() int {
	return runtime.NumCPU()
}

// Static is a fixed Environment, useful for tests and forced single-machine
// runs.
type Static struct {
	Nodes int
	Slurm bool
	CPUs  int
}

func (s Static) NodeCount() int     { return s.Nodes }
func (s Static) HasScheduler() bool { return s.Slurm }
func (s Static) CPUCount() int      { return s.CPUs }
