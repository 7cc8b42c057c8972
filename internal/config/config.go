package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
	"github.com/oshokin/dashboard-builder/internal/logger"
)

// Config holds everything a build run needs.
type Config struct {
	// SourceRoot is the dashboard project directory.
	SourceRoot string `yaml:"source_root"`
	// Manifest is the dependency manifest file name inside SourceRoot.
	Manifest string `yaml:"manifest"`
	// EssentialEntries are copied from SourceRoot into the staging directory.
	EssentialEntries []string `yaml:"essential_entries"`
	// Pins overwrite dependency constraints in the manifest.
	Pins build.PinTable `yaml:"pins"`
	// Tools are probed, in order, before anything is written.
	Tools []build.Tool `yaml:"tools"`
	// ProbeTimeout bounds each tool invocation; zero selects DefaultProbeTimeout.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the settings file looked up next to the binary's working directory.
	DefaultConfigFilename = "dashboard-builder.yaml"

	// DefaultSourceRoot builds the project in the working directory.
	DefaultSourceRoot = "."

	// DefaultProbeTimeout bounds each tool version query.
	DefaultProbeTimeout = 10 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the file permission for saved settings.
	DefaultFilePermissions = 0o600

	// EnvSourceRoot overrides SourceRoot.
	EnvSourceRoot = "DASHBOARD_SOURCE_ROOT"
	// EnvLogLevel overrides LogLevel.
	EnvLogLevel = "DASHBOARD_LOG_LEVEL"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoTools is returned when nothing would be probed.
	errNoTools = errors.New("at least one tool must be probed")
	// errInvalidTool is returned for a tool without an executable name.
	errInvalidTool = errors.New("tool name must be provided")
	// errInvalidEntry is returned for an essential entry escaping the source root.
	errInvalidEntry = errors.New("essential entry must be a relative path inside the source root")
	// errInvalidProbeTimeout is returned for a negative probe timeout.
	errInvalidProbeTimeout = errors.New("probe timeout must not be negative")
	// errInvalidLogLevel is returned for an unknown log level.
	errInvalidLogLevel = errors.New("unknown log level")
)

// DefaultEssentialEntries returns the project entries copied into staging.
func DefaultEssentialEntries() []string {
	return []string{"src", "public", build.DefaultManifestName, "README.md"}
}

// Default returns the settings of the stock dashboard build.
func Default() *Config {
	return &Config{
		SourceRoot:       DefaultSourceRoot,
		Manifest:         build.DefaultManifestName,
		EssentialEntries: DefaultEssentialEntries(),
		Pins:             build.DefaultPins(),
		Tools:            build.DefaultTools(),
		ProbeTimeout:     DefaultProbeTimeout,
		LogLevel:         DefaultLogLevel,
	}
}

// Load reads settings from path, falling back to defaults when the file is absent,
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := new(Config)

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	applyEnv(cfg)

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes validated settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for omitted settings and checks the rest.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.SourceRoot) == "" {
		cfg.SourceRoot = DefaultSourceRoot
	}

	if strings.TrimSpace(cfg.Manifest) == "" {
		cfg.Manifest = build.DefaultManifestName
	}

	if cfg.EssentialEntries == nil {
		cfg.EssentialEntries = DefaultEssentialEntries()
	}

	if cfg.Pins == nil {
		cfg.Pins = build.DefaultPins()
	}

	if cfg.Tools == nil {
		cfg.Tools = build.DefaultTools()
	}

	switch {
	case cfg.ProbeTimeout < 0:
		return fmt.Errorf("%s: %w", cfg.ProbeTimeout, errInvalidProbeTimeout)
	case cfg.ProbeTimeout == 0:
		cfg.ProbeTimeout = DefaultProbeTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errInvalidLogLevel)
	}

	for _, entry := range cfg.EssentialEntries {
		if !filepath.IsLocal(entry) || filepath.Clean(entry) == "." {
			return fmt.Errorf("%q: %w", entry, errInvalidEntry)
		}
	}

	if err := cfg.Pins.Validate(); err != nil {
		return fmt.Errorf("invalid pins: %w", err)
	}

	return validateTools(cfg.Tools)
}

func validateTools(tools []build.Tool) error {
	if len(tools) == 0 {
		return errNoTools
	}

	for _, tool := range tools {
		if strings.TrimSpace(tool.Name) == "" {
			return errInvalidTool
		}

		if tool.MinVersion == "" {
			continue
		}

		if _, err := version.NewConstraint(tool.MinVersion); err != nil {
			return fmt.Errorf("tool %s min_version: %w", tool.Name, err)
		}
	}

	return nil
}

func applyEnv(cfg *Config) {
	if root := strings.TrimSpace(os.Getenv(EnvSourceRoot)); root != "" {
		cfg.SourceRoot = root
	}

	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = level
	}
}
