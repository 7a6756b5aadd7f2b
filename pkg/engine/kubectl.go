package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandError is returned when the spawned process exits with a non-zero code
// or can't be started.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// KubectlExecutor an executor that shells out to run commands
type KubectlExecutor struct {
	kubectl []string
	envVars []string
}

// NewKubectlExecutor creates a new executor that runs kubectl commands.
// The kubectl string may carry extra arguments, e.g. "kubectl --context dev".
func NewKubectlExecutor(kubectl string, envVars []string) (KubectlExecutor, error) {
	argv, err := shellwords.Parse(kubectl)
	if err != nil {
		return KubectlExecutor{}, fmt.Errorf("parsing kubectl command '%s' failed: %w", kubectl, err)
	}
	if len(argv) == 0 {
		return KubectlExecutor{}, fmt.Errorf("kubectl command can't be empty")
	}

	return KubectlExecutor{
		kubectl: argv,
		envVars: envVars,
	}, nil
}

// LookPath checks that the kubectl binary can be found.
func (e KubectlExecutor) LookPath() error {
	if _, err := exec.LookPath(e.kubectl[0]); err != nil {
		return fmt.Errorf("%s not found: %w", e.kubectl[0], err)
	}
	return nil
}

// String returns the command line for the specified args.
func (e KubectlExecutor) String(args ...string) string {
	return strings.Join(append(append([]string{}, e.kubectl...), args...), " ")
}

// Run execute the kubectl command with the specified args and returns the stdout as string.
// It blocks until the process exits or the context is done, in which case
// the whole process group is killed.
func (e KubectlExecutor) Run(ctx context.Context, args ...string) (string, error) {
	command := e.String(args...)
	if err := ctx.Err(); err != nil {
		return "", &CommandError{Command: command, Err: err}
	}

	cmd := e.buildCmd(args)
	if len(e.envVars) > 0 {
		cmd.Env = append(os.Environ(), e.envVars...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", &CommandError{Command: command, Err: err}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = killProcessGroup(cmd)
		case <-done:
		}
	}()

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return "", &CommandError{
			Command: command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return stdout.String(), nil
}

func (e KubectlExecutor) buildCmd(args []string) *exec.Cmd {
	s := append(append([]string{}, e.kubectl...), args...)
	cmd := exec.Command(s[0], s[1:]...)
	setProcessGroup(cmd)
	return cmd
}
