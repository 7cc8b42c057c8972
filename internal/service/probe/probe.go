package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/logger"
)

var (
	// ErrToolUnavailable is returned when a tool is missing or exits with an error.
	ErrToolUnavailable = errors.New("required tool is unavailable")
	// ErrToolTooOld is returned when a tool is older than its configured minimum.
	ErrToolTooOld = errors.New("tool version does not satisfy the minimum")
)

// Prober queries tool versions through a Runner.
type Prober struct {
	// runner executes the version commands.
	runner Runner
	// timeout bounds a single tool invocation; zero means no bound.
	timeout time.Duration
}

// New creates a Prober. A zero timeout lets a hung tool block until ctx ends.
func New(runner Runner, timeout time.Duration) *Prober {
	return &Prober{
		runner:  runner,
		timeout: timeout,
	}
}

// Probe queries every tool in order and records the results in status.
// It stops at the first failing tool; later tools stay unrecorded.
func (p *Prober) Probe(ctx context.Context, tools []build.Tool, status *build.Status) error {
	for _, tool := range tools {
		detected, err := p.query(ctx, tool)
		if err != nil {
			status.Record(tool.Name, build.FailedMarker)
			logger.ErrorKV(ctx, "Tool check failed", "tool", tool.Name, "error", err)

			return fmt.Errorf("%s: %w: %w", tool.Name, ErrToolUnavailable, err)
		}

		status.Record(tool.Name, detected)

		if err = checkMinVersion(tool, detected); err != nil {
			logger.ErrorKV(ctx, "Tool is too old", "tool", tool.Name, "version", detected, "required", tool.MinVersion)

			return err
		}

		logger.InfoKV(ctx, "Tool found", "tool", tool.Name, "version", detected)
	}

	return nil
}

func (p *Prober) query(ctx context.Context, tool build.Tool) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	logger.DebugKV(ctx, "Querying tool version", "tool", tool.Name, "args", tool.Args)

	output, err := p.runner.Run(ctx, tool.Name, tool.Args...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(output), nil
}

// checkMinVersion accepts anything when no minimum is configured.
func checkMinVersion(tool build.Tool, detected string) error {
	if tool.MinVersion == "" {
		return nil
	}

	constraint, err := version.NewConstraint(tool.MinVersion)
	if err != nil {
		return fmt.Errorf("%s min_version %q: %w", tool.Name, tool.MinVersion, err)
	}

	firstLine, _, _ := strings.Cut(detected, "\n")

	detectedVersion, err := version.NewVersion(strings.TrimSpace(firstLine))
	if err != nil {
		return fmt.Errorf("%s reported %q: %w: %w", tool.Name, detected, ErrToolTooOld, err)
	}

	if !constraint.Check(detectedVersion) {
		return fmt.Errorf("%s %s, need %s: %w", tool.Name, detectedVersion, tool.MinVersion, ErrToolTooOld)
	}

	return nil
}
