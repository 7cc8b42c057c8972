package patcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
)

var errTestLoad = errors.New("test load error")

// memoryRepository is a minimal in-memory Repository implementation for tests.
type memoryRepository struct {
	// manifest is returned from Load.
	manifest *build.Manifest
	// loadErr is returned from Load.
	loadErr error
	// saved is the last manifest passed to Save.
	saved *build.Manifest
	// saves counts Save calls.
	saves int
}

func (m *memoryRepository) Load(context.Context) (*build.Manifest, error) {
	return m.manifest, m.loadErr
}

func (m *memoryRepository) Save(_ context.Context, manifest *build.Manifest) error {
	m.saved = manifest
	m.saves++

	return nil
}

func dependencies(name, constraint string) *build.Section {
	value, _ := json.Marshal(constraint) //nolint:errchkjson // Plain strings always encode.

	return &build.Section{Entries: []build.Entry{{Name: name, Value: value}}}
}

// TestRun_PinsAndSaves pins present keys and saves the manifest.
func TestRun_PinsAndSaves(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{manifest: &build.Manifest{Fields: []build.Field{
		{Key: build.SectionDependencies, Section: dependencies("recharts", "^2.1.0")},
		{Key: build.SectionDevDependencies, Section: dependencies("webpack-cli", "^4.10.0")},
	}}}

	changes, err := Run(context.Background(), repo, build.DefaultPins())
	require.NoError(t, err)
	require.Len(t, changes, 2)
	require.Equal(t, 1, repo.saves)

	got, _ := repo.saved.Dependency(build.SectionDependencies, "recharts")
	require.Equal(t, "^2.8.0", got)

	got, _ = repo.saved.Dependency(build.SectionDevDependencies, "webpack-cli")
	require.Equal(t, "^5.0.0", got)
}

// TestRun_NoPinnedKeys still saves, with an unchanged key set.
func TestRun_NoPinnedKeys(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{manifest: &build.Manifest{Fields: []build.Field{
		{Key: "name", Value: json.RawMessage(`"dashboard"`)},
		{Key: build.SectionDependencies, Section: dependencies("zustand", "^4.5.0")},
	}}}

	changes, err := Run(context.Background(), repo, build.DefaultPins())
	require.NoError(t, err)
	require.Empty(t, changes)
	require.Equal(t, 1, repo.saves)

	got, _ := repo.saved.Dependency(build.SectionDependencies, "zustand")
	require.Equal(t, "^4.5.0", got)
}

// TestRun_LoadError propagates load failures without saving.
func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{loadErr: errTestLoad}

	_, err := Run(context.Background(), repo, build.DefaultPins())
	require.ErrorIs(t, err, errTestLoad)
	require.Zero(t, repo.saves)
}
