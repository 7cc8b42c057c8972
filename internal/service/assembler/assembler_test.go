package assembler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// TestAssemble_CopiesExistingEntries skips the missing public directory and still
// writes the status page.
func TestAssemble_CopiesExistingEntries(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "export default App")
	writeFile(t, filepath.Join(root, "src", "mqtt", "client.ts"), "connect()")
	writeFile(t, filepath.Join(root, "package.json"), `{"name":"dashboard"}`)
	writeFile(t, filepath.Join(root, "README.md"), "# Dashboard")

	layout := build.NewLayout(root, "")
	entries := []string{"src", "public", "package.json", "README.md"}

	copied, err := Assemble(context.Background(), layout, entries)
	require.NoError(t, err)
	require.Equal(t, []string{"src", "package.json", "README.md"}, copied)

	require.FileExists(t, filepath.Join(layout.Staging, "src", "mqtt", "client.ts"))
	require.FileExists(t, filepath.Join(layout.Staging, "package.json"))
	require.FileExists(t, filepath.Join(layout.Staging, "README.md"))
	require.NoDirExists(t, filepath.Join(layout.Staging, "public"))

	page, err := os.ReadFile(filepath.Join(layout.Staging, IndexFilename))
	require.NoError(t, err)
	require.Equal(t, IndexPage(), page)
	require.Contains(t, string(page), "<title>AI Scraper Dashboard</title>")
	require.True(t, strings.HasPrefix(string(page), "<!DOCTYPE html>\n"))
	require.True(t, strings.HasSuffix(string(page), "</body>\n</html>"), "the page has no trailing newline")
}

// TestAssemble_KeepsStaleFiles shows that a second run does not clean the staging directory.
func TestAssemble_KeepsStaleFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "v1")

	layout := build.NewLayout(root, "")

	_, err := Assemble(context.Background(), layout, []string{"src"})
	require.NoError(t, err)

	writeFile(t, filepath.Join(layout.Staging, "src", "leftover.ts"), "stale")
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "v2")

	_, err = Assemble(context.Background(), layout, []string{"src"})
	require.NoError(t, err)

	app, err := os.ReadFile(filepath.Join(layout.Staging, "src", "App.tsx"))
	require.NoError(t, err)
	require.Equal(t, "v2", string(app))
	require.FileExists(t, filepath.Join(layout.Staging, "src", "leftover.ts"))
}

// TestAssemble_EmptySourceRoot produces only the status page.
func TestAssemble_EmptySourceRoot(t *testing.T) {
	t.Parallel()

	layout := build.NewLayout(t.TempDir(), "")

	copied, err := Assemble(context.Background(), layout, []string{"src", "public", "package.json", "README.md"})
	require.NoError(t, err)
	require.Empty(t, copied)

	entries, err := os.ReadDir(layout.Staging)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, IndexFilename, entries[0].Name())
}

// TestAssemble_DereferencesSymlinks stages the file a source link points to,
// so the bundle carries no dangling links.
func TestAssemble_DereferencesSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "shared", "theme.css"), "body { margin: 0; }")
	writeFile(t, filepath.Join(root, "src", "App.tsx"), "export default App")
	require.NoError(t, os.Symlink("../shared/theme.css", filepath.Join(root, "src", "theme.css")))

	layout := build.NewLayout(root, "")

	copied, err := Assemble(context.Background(), layout, []string{"src"})
	require.NoError(t, err)
	require.Equal(t, []string{"src"}, copied)

	staged := filepath.Join(layout.Staging, "src", "theme.css")

	info, err := os.Lstat(staged)
	require.NoError(t, err)
	require.True(t, info.Mode().IsRegular())

	contents, err := os.ReadFile(staged)
	require.NoError(t, err)
	require.Equal(t, "body { margin: 0; }", string(contents))
}
