package build

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
)

var (
	// ErrEmptyPackage is returned for a pin without a package name.
	ErrEmptyPackage = errors.New("pin package name is empty")
	// ErrDuplicatePin is returned when a package is pinned twice.
	ErrDuplicatePin = errors.New("package pinned more than once")
	// ErrInvalidConstraint is returned when a pin is not a valid npm range.
	ErrInvalidConstraint = errors.New("invalid version constraint")
)

// Pin forces a package to a fixed version constraint.
type Pin struct {
	// Package is the npm package name, scoped names included.
	Package string `yaml:"package"`
	// Constraint replaces whatever the manifest declared for Package.
	Constraint string `yaml:"constraint"`
}

// PinTable is an ordered list of pins. Order decides the order of reported changes.
type PinTable []Pin

// DefaultPins returns the pins known to produce a working dashboard build.
func DefaultPins() PinTable {
	return PinTable{
		{Package: "tailwindcss", Constraint: "^3.4.0"},
		{Package: "react", Constraint: "^18.2.0"},
		{Package: "react-dom", Constraint: "^18.2.0"},
		{Package: "@types/react", Constraint: "^18.2.0"},
		{Package: "@types/react-dom", Constraint: "^18.2.0"},
		{Package: "lucide-react", Constraint: "^0.400.0"},
		{Package: "date-fns", Constraint: "^3.0.0"},
		{Package: "recharts", Constraint: "^2.8.0"},
		{Package: "electron", Constraint: "^30.0.0"},
		{Package: "mqtt", Constraint: "^5.0.0"},
		{Package: "@typescript-eslint/eslint-plugin", Constraint: "^6.0.0"},
		{Package: "@typescript-eslint/parser", Constraint: "^6.0.0"},
		{Package: "eslint", Constraint: "^8.0.0"},
		{Package: "webpack", Constraint: "^5.88.0"},
		{Package: "webpack-cli", Constraint: "^5.0.0"},
	}
}

// Validate checks that every pin names a package once and carries a parsable range.
func (t PinTable) Validate() error {
	seen := make(map[string]struct{}, len(t))

	for _, pin := range t {
		name := strings.TrimSpace(pin.Package)
		if name == "" {
			return ErrEmptyPackage
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%s: %w", name, ErrDuplicatePin)
		}

		seen[name] = struct{}{}

		if _, err := semver.NewConstraint(pin.Constraint); err != nil {
			return fmt.Errorf("%s %q: %w: %w", name, pin.Constraint, ErrInvalidConstraint, err)
		}
	}

	return nil
}

// Admits reports whether the previous constraint already accepted the lowest
// version allowed by the pin. Any parse failure yields false.
func (p Pin) Admits(previous string) bool {
	previousConstraint, err := semver.NewConstraint(previous)
	if err != nil {
		return false
	}

	lowest, err := semver.NewVersion(strings.TrimLeft(strings.TrimSpace(p.Constraint), "^~=>v "))
	if err != nil {
		return false
	}

	return previousConstraint.Check(lowest)
}
