package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	mock_probe "github.com/oshokin/dashboard-builder/internal/service/probe/mocks"
)

// TestProbe_RecordsVersions records trimmed stdout for every tool.
func TestProbe_RecordsVersions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	runner := mock_probe.NewMockRunner(ctrl)

	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), "node", "--version").Return("v20.11.1\n", nil),
		runner.EXPECT().Run(gomock.Any(), "npm", "--version").Return("10.2.4\n", nil),
	)

	tools := build.DefaultTools()
	status := build.NewStatus(tools)

	require.NoError(t, New(runner, time.Second).Probe(context.Background(), tools, status))
	require.Equal(t, "v20.11.1", status.Version("node"))
	require.Equal(t, "10.2.4", status.Version("npm"))
}

// TestProbe_StopsAtFirstFailure marks the failing tool and leaves later tools unprobed.
func TestProbe_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	runner := mock_probe.NewMockRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), "node", "--version").Return("", errors.New("exit status 127"))

	tools := build.DefaultTools()
	status := build.NewStatus(tools)

	err := New(runner, time.Second).Probe(context.Background(), tools, status)
	require.ErrorIs(t, err, ErrToolUnavailable)
	require.Equal(t, build.FailedMarker, status.Version("node"))
	require.Equal(t, build.UnknownMarker, status.Version("npm"))
}

// TestProbe_MinVersion enforces an optional minimum version.
func TestProbe_MinVersion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	runner := mock_probe.NewMockRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), "node", "--version").Return("v16.20.2\n", nil)
	runner.EXPECT().Run(gomock.Any(), "node", "--version").Return("v20.11.1\n", nil)
	runner.EXPECT().Run(gomock.Any(), "node", "--version").Return("nightly\n", nil)

	tools := []build.Tool{{Name: "node", Label: "Node.js", Args: []string{"--version"}, MinVersion: ">= 18.0"}}
	prober := New(runner, 0)

	status := build.NewStatus(tools)
	require.ErrorIs(t, prober.Probe(context.Background(), tools, status), ErrToolTooOld)
	require.Equal(t, "v16.20.2", status.Version("node"))

	require.NoError(t, prober.Probe(context.Background(), tools, build.NewStatus(tools)))
	require.ErrorIs(t, prober.Probe(context.Background(), tools, build.NewStatus(tools)), ErrToolTooOld)
}

// TestProbe_TimeoutReachesRunner checks that each call gets a deadline.
func TestProbe_TimeoutReachesRunner(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	runner := mock_probe.NewMockRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), "npm", "--version").DoAndReturn(
		func(ctx context.Context, _ string, _ ...string) (string, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok)

			return "10.2.4", nil
		})

	tools := []build.Tool{{Name: "npm", Args: []string{"--version"}}}
	require.NoError(t, New(runner, time.Minute).Probe(context.Background(), tools, build.NewStatus(tools)))
}

// TestExecRunner runs small shell scripts to cover success, exit codes and missing binaries.
func TestExecRunner(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available on windows")
	}

	dir := t.TempDir()
	ok := filepath.Join(dir, "ok")
	failing := filepath.Join(dir, "failing")

	require.NoError(t, os.WriteFile(ok, []byte("#!/bin/sh\necho \"v$1\"\n"), 0o755))
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\necho broken >&2\nexit 3\n"), 0o755))

	runner := NewExecRunner()
	ctx := context.Background()

	out, err := runner.Run(ctx, ok, "1.2.3")
	require.NoError(t, err)
	require.Equal(t, "v1.2.3\n", out)

	_, err = runner.Run(ctx, failing)
	require.ErrorContains(t, err, "broken")

	_, err = runner.Run(ctx, filepath.Join(dir, "missing"))
	require.Error(t, err)
}
