package build

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStatus_Entries checks labels, recorded versions and the unknown marker.
func TestStatus_Entries(t *testing.T) {
	t.Parallel()

	status := NewStatus(DefaultTools())
	status.Record("node", "v20.11.1")

	require.Equal(t, []StatusEntry{
		{Label: "Node.js", Version: "v20.11.1"},
		{Label: "npm", Version: UnknownMarker},
	}, status.Entries())

	status.Record("npm", FailedMarker)
	require.Equal(t, FailedMarker, status.Version("npm"))
}

// TestResult_Success reports failure on any failed stage and on an empty run.
func TestResult_Success(t *testing.T) {
	t.Parallel()

	var result Result
	require.False(t, result.Success())

	result.Stages = append(result.Stages, StageResult{Stage: StageProbe})
	require.True(t, result.Success())

	stageErr := errors.New("disk full")
	result.Stages = append(result.Stages, StageResult{Stage: StagePatch, Err: stageErr})
	require.False(t, result.Success())
	require.ErrorIs(t, result.Err(), stageErr)
}

// TestNewLayout derives every directory from the source root.
func TestNewLayout(t *testing.T) {
	t.Parallel()

	layout := NewLayout("/srv/dashboard/", "")

	require.Equal(t, "/srv/dashboard", layout.SourceRoot)
	require.Equal(t, filepath.Join("/srv/dashboard", "package.json"), layout.Manifest)
	require.Equal(t, filepath.Join("/srv/dashboard", "simple-build"), layout.Staging)
	require.Equal(t, filepath.Join("/srv/dashboard", "linux-package"), layout.PackageRoot)
	require.Equal(t, filepath.Join("/srv/dashboard", "linux-package", "ai-scraper-dashboard"), layout.AppDir)
}
