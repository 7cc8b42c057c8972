package manifest

import (
	"bytes"
	"context"
	"crypto"
	"crypto/sha512"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
)

// DefaultFileMode is used when the manifest mode cannot be read.
const DefaultFileMode os.FileMode = 0o644

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Repository loads and stores the dependency manifest.
type Repository interface {
	Load(ctx context.Context) (*build.Manifest, error)
	Save(ctx context.Context, m *build.Manifest) error
}

// FileRepository keeps the manifest in a JSON file on disk.
type FileRepository struct {
	// path is the location of package.json.
	path string
}

// NewFileRepository creates a repository for the manifest at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads and decodes the manifest.
func (r *FileRepository) Load(_ context.Context) (*build.Manifest, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", r.path, ErrNotFound)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Decode(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return m, nil
}

// Save encodes the manifest and swaps it in place of the existing file.
// The file mode of the existing manifest is kept.
func (r *FileRepository) Save(_ context.Context, m *build.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	info, err := os.Stat(r.path)
	if errors.Is(err, os.ErrNotExist) {
		if err = os.WriteFile(r.path, data, DefaultFileMode); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

		return nil
	} else if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}

	checksum := sha512.Sum512(data)

	options := goupdate.Options{
		TargetPath: r.path,
		TargetMode: info.Mode().Perm(),
		Checksum:   checksum[:],
		Hash:       crypto.SHA512,
	}

	if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}

	return nil
}
