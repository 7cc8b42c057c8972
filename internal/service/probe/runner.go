//go:generate mockgen -destination=./mocks/runner.go . Runner
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args. A non-zero exit status is an error that carries
// the trimmed standard error of the command.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if message := strings.TrimSpace(stderr.String()); message != "" {
				return "", fmt.Errorf("%w: %s", err, message)
			}
		}

		return "", err
	}

	return string(output), nil
}
