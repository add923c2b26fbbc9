package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// HostRunnerAdapter runs the host test command whose test cases record
// pointers through the checklist CLI.
type HostRunnerAdapter interface {
	// Run executes argv in workDir with env appended to the current
	// environment. It returns the process exit code; err is set only when the
	// command could not be started or was interrupted.
	Run(ctx context.Context, workDir string, env []string, argv []string) (exitCode int, err error)
}

// LocalHostRunnerAdapter provides a concrete implementation using os/exec.
type LocalHostRunnerAdapter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewLocalHostRunnerAdapter constructs a runner that streams the host output
// to stdout and stderr.
func NewLocalHostRunnerAdapter(stdout, stderr io.Writer) *LocalHostRunnerAdapter {
	return &LocalHostRunnerAdapter{stdout: stdout, stderr: stderr}
}

// Run implements HostRunnerAdapter.
func (a *LocalHostRunnerAdapter) Run(ctx context.Context, workDir string, env []string, argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("no host command given")
	}

	// #nosec G204 - the host command is supplied by the user on purpose
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = a.stdout
	cmd.Stderr = a.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("run host command %q: %w", argv[0], err)
}
