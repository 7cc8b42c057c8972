package build

import "path/filepath"

const (
	// AppName names the application directory, the desktop entry and the /opt install path.
	AppName = "ai-scraper-dashboard"
	// StagingDirName is the staging directory created under the source root.
	StagingDirName = "simple-build"
	// PackageDirName is the package root created under the source root.
	PackageDirName = "linux-package"
	// DefaultManifestName is the dependency manifest read from the source root.
	DefaultManifestName = "package.json"
)

// Layout resolves every path the pipeline reads or writes.
type Layout struct {
	// SourceRoot is the dashboard project directory.
	SourceRoot string
	// Manifest is the package.json path.
	Manifest string
	// Staging is the intermediate build directory.
	Staging string
	// PackageRoot is the Linux-installable directory tree.
	PackageRoot string
	// AppDir is the application directory inside PackageRoot.
	AppDir string
}

// NewLayout derives the layout from the source root and the manifest file name.
func NewLayout(sourceRoot, manifestName string) Layout {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}

	root := filepath.Clean(sourceRoot)
	packageRoot := filepath.Join(root, PackageDirName)

	return Layout{
		SourceRoot:  root,
		Manifest:    filepath.Join(root, manifestName),
		Staging:     filepath.Join(root, StagingDirName),
		PackageRoot: packageRoot,
		AppDir:      filepath.Join(packageRoot, AppName),
	}
}
