package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kshitij-v-mehta/gray-scott-campaign/internal/config"
	"github.com/kshitij-v-mehta/gray-scott-campaign/pkg/types"
)

// Per-item failure classes. Each aborts its own run only; the worker moves on
// to the next queue item.
var (
	ErrDirectoryConflict   = errors.New("run directory already exists")
	ErrSerialization       = errors.New("cannot serialize run config")
	ErrResourceUnavailable = errors.New("required input unavailable")
	ErrExternalProcess     = errors.New("simulation exited with non-zero status")
)

// File names materialized inside every run directory.
const (
	SettingsFileName = "settings-files.json"
	AdiosFileName    = "adios2.xml"
	StdoutFileName   = "stdout.txt"
	StderrFileName   = "stderr.txt"
)

// CommandBuilder yields the argv prefix used to launch one run.
type CommandBuilder interface {
	LaunchCommand() []string
}

// Executor materializes one run directory and drives the external simulation
// process to completion. It never retries and never kills an in-flight run.
type Executor struct {
	log      *zap.Logger
	settings *config.JobSettings
	launch   CommandBuilder
}

func New(log *zap.Logger, settings *config.JobSettings, launch CommandBuilder) *Executor {
	return &Executor{log: log, settings: settings, launch: launch}
}

// Execute runs one work item start to finish: create the run directory,
// write the materialized config, copy the ADIOS descriptor, then launch the
// simulation with output captured into the run directory. All failures are
// contained in the returned outcome.
func (e *Executor) Execute(item types.WorkItem) types.RunOutcome {
	start := time.Now()
	out := types.RunOutcome{
		Dir:    item.Dir,
		Stdout: filepath.Join(item.Dir, StdoutFileName),
		Stderr: filepath.Join(item.Dir, StderrFileName),
	}

	if err := os.Mkdir(item.Dir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			out.Err = fmt.Errorf("%w: %s", ErrDirectoryConflict, item.Dir)
		} else {
			out.Err = err
		}
		return out
	}
	if err := writeSettings(item); err != nil {
		out.Err = err
		return out
	}
	if err := copyFile(e.settings.Adios2XML, filepath.Join(item.Dir, AdiosFileName)); err != nil {
		out.Err = fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
		return out
	}

	argv := append(e.launch.LaunchCommand(), e.settings.GSExe, SettingsFileName)
	out.ExitCode, out.Err = e.run(argv, item.Dir, out.Stdout, out.Stderr)
	out.Duration = time.Since(start)
	return out
}

// run launches argv with the run directory as working directory and both
// output streams redirected into it, then waits for the process to exit.
func (e *Executor) run(argv []string, dir, stdoutPath, stderrPath string) (int, error) {
	stdoutF, err := os.Create(stdoutPath)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer stdoutF.Close()
	stderrF, err := os.Create(stderrPath)
	if err != nil {
		return -1, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	defer stderrF.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdoutF
	cmd.Stderr = stderrF

	e.log.Info("launching run",
		zap.String("dir", dir),
		zap.Strings("cmd", argv))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return code, fmt.Errorf("%w: exit code %d", ErrExternalProcess, code)
		}
		// The process never started, e.g. the executable vanished after
		// startup validation.
		return -1, fmt.Errorf("%w: %v", ErrResourceUnavailable, err)
	}
	return 0, nil
}

func writeSettings(item types.WorkItem) error {
	data, err := json.MarshalIndent(item.Config, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	path := filepath.Join(item.Dir, SettingsFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
