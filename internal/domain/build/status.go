package build

import (
	"errors"
	"time"
)

const (
	// FailedMarker is recorded for a tool whose probe failed.
	FailedMarker = "FAIL"
	// UnknownMarker is shown for a tool that was never probed.
	UnknownMarker = "Unknown"
)

// Tool is an external command queried for its version.
type Tool struct {
	// Name is the executable looked up in PATH.
	Name string `yaml:"name"`
	// Label is the human-readable name used in the report.
	Label string `yaml:"label"`
	// Args are passed to the executable, usually --version.
	Args []string `yaml:"args"`
	// MinVersion is an optional constraint such as ">= 18.0".
	MinVersion string `yaml:"min_version,omitempty"`
}

// DefaultTools returns the Node.js toolchain probed before every build.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "node", Label: "Node.js", Args: []string{"--version"}},
		{Name: "npm", Label: "npm", Args: []string{"--version"}},
	}
}

// StatusEntry is one reported tool version.
type StatusEntry struct {
	// Label is the tool label.
	Label string
	// Version is the probed version, FailedMarker or UnknownMarker.
	Version string
}

// Status records probed tool versions in probe order.
type Status struct {
	tools    []Tool
	versions map[string]string
}

// NewStatus creates a status record for the given tools; nothing is probed yet.
func NewStatus(tools []Tool) *Status {
	return &Status{
		tools:    append([]Tool(nil), tools...),
		versions: make(map[string]string, len(tools)),
	}
}

// Record stores the version reported by the tool.
func (s *Status) Record(tool, version string) {
	s.versions[tool] = version
}

// Version returns the recorded version or UnknownMarker.
func (s *Status) Version(tool string) string {
	if v, ok := s.versions[tool]; ok {
		return v
	}

	return UnknownMarker
}

// Entries returns one entry per registered tool, in registration order.
func (s *Status) Entries() []StatusEntry {
	entries := make([]StatusEntry, 0, len(s.tools))
	for _, tool := range s.tools {
		label := tool.Label
		if label == "" {
			label = tool.Name
		}

		entries = append(entries, StatusEntry{Label: label, Version: s.Version(tool.Name)})
	}

	return entries
}

// Stage names in pipeline order.
const (
	StageProbe   = "environment probe"
	StagePatch   = "manifest patch"
	StageBundle  = "static bundle"
	StagePackage = "linux package"
)

// StageResult is the outcome of one pipeline stage.
type StageResult struct {
	// Stage is one of the Stage* names.
	Stage string
	// Err is nil when the stage succeeded.
	Err error
	// Duration is the wall time the stage took.
	Duration time.Duration
}

// Result aggregates everything a pipeline run produced.
type Result struct {
	// Status holds the probed tool versions.
	Status *Status
	// Stages are the stages that ran, in order.
	Stages []StageResult
	// Changes are the overwritten manifest dependencies.
	Changes []Change
	// Copied are the essential entries copied into staging.
	Copied []string
	// Artifacts are the files written by the package stage.
	Artifacts []string
}

var errNoStages = errors.New("no stage was run")

// Err returns the first stage error, if any.
func (r *Result) Err() error {
	if len(r.Stages) == 0 {
		return errNoStages
	}

	for _, stage := range r.Stages {
		if stage.Err != nil {
			return stage.Err
		}
	}

	return nil
}

// Success reports whether every stage that ran succeeded.
func (r *Result) Success() bool {
	return r.Err() == nil
}
