package linuxpkg

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/fsutil"
	"github.com/oshokin/dashboard-builder/internal/logger"
)

// Generated file names.
const (
	LauncherFilename     = "launch.sh"
	DesktopEntryFilename = build.AppName + ".desktop"
	InstallFilename      = "install.sh"
	ReadmeFilename       = "README.md"
)

//go:embed files
var files embed.FS

// artifact is a generated file and where it goes.
type artifact struct {
	// name is both the embedded file name and the output file name.
	name string
	// inAppDir places the file in the application directory instead of the package root.
	inAppDir bool
	// mode is applied after writing.
	mode os.FileMode
}

func artifacts() []artifact {
	return []artifact{
		{name: LauncherFilename, inAppDir: true, mode: fsutil.FileModeExec},
		{name: DesktopEntryFilename, mode: fsutil.FileModeDefault},
		{name: InstallFilename, mode: fsutil.FileModeExec},
		{name: ReadmeFilename, mode: fsutil.FileModeDefault},
	}
}

// Contents returns the fixed contents of a generated file.
func Contents(name string) ([]byte, error) {
	return files.ReadFile("files/" + name)
}

// Assemble mirrors the staging directory into the application directory and
// writes the generated files. It returns the paths of the generated files.
func Assemble(ctx context.Context, layout build.Layout) ([]string, error) {
	if err := os.MkdirAll(layout.AppDir, fsutil.DirModeDefault); err != nil {
		return nil, fmt.Errorf("create package directories: %w", err)
	}

	switch _, err := os.Stat(layout.Staging); {
	case err == nil:
		if err = fsutil.CopyTree(layout.Staging, layout.AppDir); err != nil {
			return nil, fmt.Errorf("mirror staging directory: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		logger.WarnKV(ctx, "Staging directory is missing, application directory left as is", "path", layout.Staging)
	default:
		return nil, fmt.Errorf("stat staging directory: %w", err)
	}

	written := make([]string, 0, len(artifacts()))

	for _, a := range artifacts() {
		contents, err := Contents(a.name)
		if err != nil {
			return written, fmt.Errorf("read %s: %w", a.name, err)
		}

		dir := layout.PackageRoot
		if a.inAppDir {
			dir = layout.AppDir
		}

		path := filepath.Join(dir, a.name)
		if err = fsutil.WriteFile(path, contents, a.mode); err != nil {
			return written, err
		}

		logger.DebugKV(ctx, "Wrote package file", "path", path, "mode", a.mode)

		written = append(written, path)
	}

	logger.InfoKV(ctx, "Linux package created", "path", layout.PackageRoot)

	return written, nil
}
