package assembler

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/fsutil"
	"github.com/oshokin/dashboard-builder/internal/logger"
)

// IndexFilename is the status page written into the staging directory.
const IndexFilename = "index.html"

//go:embed static/index.html
var indexPage []byte

// IndexPage returns the static status page.
func IndexPage() []byte {
	return append([]byte(nil), indexPage...)
}

// Assemble copies the entries that exist under layout.SourceRoot into
// layout.Staging and writes the status page. Missing entries are skipped.
// It returns the entries that were copied.
func Assemble(ctx context.Context, layout build.Layout, entries []string) ([]string, error) {
	if err := os.MkdirAll(layout.Staging, fsutil.DirModeDefault); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	copied := make([]string, 0, len(entries))

	for _, entry := range entries {
		src := filepath.Join(layout.SourceRoot, entry)
		dst := filepath.Join(layout.Staging, entry)

		info, err := os.Stat(src)
		if err != nil {
			logger.DebugKV(ctx, "Skipping missing entry", "entry", entry, "error", err)
			continue
		}

		if info.IsDir() {
			err = fsutil.CopyTree(src, dst)
		} else {
			err = fsutil.CopyFile(src, dst)
		}

		if err != nil {
			return copied, fmt.Errorf("copy %s: %w", entry, err)
		}

		logger.DebugKV(ctx, "Copied entry", "entry", entry)

		copied = append(copied, entry)
	}

	indexPath := filepath.Join(layout.Staging, IndexFilename)
	if err := fsutil.WriteFile(indexPath, indexPage, fsutil.FileModeDefault); err != nil {
		return copied, err
	}

	logger.InfoKV(ctx, "Simple build created", "path", layout.Staging, "copied", len(copied))

	return copied, nil
}
