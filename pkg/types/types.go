package types

import (
	"encoding/json"
	"time"
)

// RunConfig is the full parameter set for one simulation run. The two sweep
// keys F and k are first-class fields; every other key read from the template
// passes through Extra untouched, so the simulation sees exactly what the
// template author wrote plus the two overridden values.
type RunConfig struct {
	F     float64
	K     float64
	Extra map[string]any
}

// Clone returns an independent copy so the generator can overwrite the sweep
// keys per grid point without mutating the shared template.
func (c RunConfig) Clone() RunConfig {
	out := RunConfig{F: c.F, K: c.K}
	if c.Extra != nil {
		out.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (c RunConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		m[k] = v
	}
	m["F"] = c.F
	m["k"] = c.K
	return json.Marshal(m)
}

func (c *RunConfig) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if f, ok := m["F"].(float64); ok {
		c.F = f
	}
	if k, ok := m["k"].(float64); ok {
		c.K = k
	}
	delete(m, "F")
	delete(m, "k")
	c.Extra = m
	return nil
}

// WorkItem is one run of the ensemble: its private directory and the config
// to materialize there. At most one holder owns a given item at a time:
// generator, then queue, then the worker that popped it.
type WorkItem struct {
	Dir    string
	Config RunConfig
}

// Message is the queue envelope. Terminate marks a termination token; the
// flag cannot collide with any legitimate WorkItem payload.
type Message struct {
	Item      WorkItem
	Terminate bool
}

// RunOutcome is emitted by a worker after one run finishes, whichever way.
// Err is nil on success; ExitCode is the external process's exit status.
type RunOutcome struct {
	Dir      string
	WorkerID int
	ExitCode int
	Err      error
	Stdout   string
	Stderr   string
	Duration time.Duration
}
