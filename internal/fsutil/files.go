package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

// ErrEmptyPath is returned when a source or destination path is empty.
var ErrEmptyPath = errors.New("source and destination paths cannot be empty")

var errNotDirectory = errors.New("not a directory")

// CopyFile copies src to dst, overwriting dst, and keeps the permission bits
// and modification time of src. A symlinked src is copied as its target.
func CopyFile(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("stat source %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), DirModeDefault); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}

	if err := copy.Copy(src, dst, copyOptions()); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return nil
}

// CopyTree merges the directory src into dst. Files with the same relative
// path are overwritten; anything else already in dst is kept.
// Symlinks are followed, so dst holds the contents they point to.
func CopyTree(src, dst string) error {
	if src == "" || dst == "" {
		return ErrEmptyPath
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source directory %s: %w", src, err)
	}

	if !srcInfo.IsDir() {
		return fmt.Errorf("%s: %w", src, errNotDirectory)
	}

	if err = copy.Copy(src, dst, copyOptions()); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	return nil
}

// WriteFile writes data to path, creating parent directories, and forces perm
// even when the file already existed with other bits.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), DirModeDefault); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("set permissions on %s: %w", path, err)
	}

	return nil
}

// copyOptions merges into existing directories, dereferences symlinks and
// keeps modification times.
func copyOptions() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		OnDirExists: func(_, _ string) copy.DirExistsAction {
			return copy.Merge
		},
		PreserveTimes: true,
	}
}
