package postprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"docs-scrape/model"
)

var ErrDownstreamStep = errors.New("post-processing step failed")

// StepError carries the exit status of a failed script. ExitCode is -1 when
// the process never started or was killed by a signal.
type StepError struct {
	Script   string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s exited with status %d: %v", ErrDownstreamStep, e.Script, e.ExitCode, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrDownstreamStep, e.Err}
}

// Step describes one invocation of the external script.
type Step struct {
	Shell  string
	Script string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// Environment returns the PROVIDER_* variables for the script.
func Environment(components model.RepoURLComponents, names model.ProviderNames) []string {
	return []string{
		"PROVIDER_OWNER=" + components.Owner,
		"PROVIDER_REPO=" + components.Repository,
		"PROVIDER_BRANCH=" + components.Ref,
		"PROVIDER_NAME=" + names.Name,
		"PROVIDER_CAP=" + names.Cap,
	}
}

// Run executes the script through the shell with the current environment plus step.Env.
func Run(ctx context.Context, step Step) error {
	shell := step.Shell
	if shell == "" {
		shell = "bash"
	}

	cmd := exec.CommandContext(ctx, shell, step.Script)
	cmd.Dir = step.Dir
	cmd.Env = append(os.Environ(), step.Env...)
	cmd.Stdout = step.Stdout
	cmd.Stderr = step.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &StepError{Script: step.Script, ExitCode: code, Err: err}
	}
	return nil
}
