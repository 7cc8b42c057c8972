package build

import (
	"bytes"
	"encoding/json"
)

// Manifest sections the pin table is applied to, in application order.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
)

// PinnedSections lists the sections patched by ApplyPins.
func PinnedSections() []string {
	return []string{SectionDependencies, SectionDevDependencies}
}

// Manifest is a package.json document that keeps the order of its keys.
// Values outside the dependency sections are kept as raw JSON.
type Manifest struct {
	// Fields are the top-level members in file order.
	Fields []Field
}

// Field is one top-level member of the manifest.
type Field struct {
	// Key is the member name.
	Key string
	// Value is the raw JSON value; unused when Section is set.
	Value json.RawMessage
	// Section is set for dependency sections that are JSON objects.
	Section *Section
}

// Section is an ordered dependency object.
type Section struct {
	// Entries are the dependencies in file order.
	Entries []Entry
}

// Entry is a single dependency declaration.
type Entry struct {
	// Name is the package name.
	Name string
	// Value is the raw JSON value, normally a quoted version range.
	Value json.RawMessage
}

// Change records one overwritten dependency.
type Change struct {
	// Section is the manifest section the dependency lives in.
	Section string
	// Package is the dependency name.
	Package string
	// Previous is the replaced constraint as written in the manifest.
	Previous string
	// Pinned is the constraint written instead.
	Pinned string
}

// IsDependencySection reports whether the key names a section touched by pins.
func IsDependencySection(key string) bool {
	return key == SectionDependencies || key == SectionDevDependencies
}

// ApplyPins overwrites every pinned package present in the dependency sections.
// Packages missing from the manifest are not added.
func (m *Manifest) ApplyPins(pins PinTable) []Change {
	var changes []Change

	for _, sectionName := range PinnedSections() {
		for i := range m.Fields {
			field := &m.Fields[i]
			if field.Key != sectionName || field.Section == nil {
				continue
			}

			for _, pin := range pins {
				changes = append(changes, field.Section.pin(sectionName, pin)...)
			}
		}
	}

	return changes
}

// Dependency returns the constraint declared for the package in the section.
func (m *Manifest) Dependency(section, pkg string) (string, bool) {
	for _, field := range m.Fields {
		if field.Key != section || field.Section == nil {
			continue
		}

		for _, entry := range field.Section.Entries {
			if entry.Name == pkg {
				return rawText(entry.Value), true
			}
		}
	}

	return "", false
}

func (s *Section) pin(sectionName string, pin Pin) []Change {
	var changes []Change

	for i := range s.Entries {
		entry := &s.Entries[i]
		if entry.Name != pin.Package {
			continue
		}

		changes = append(changes, Change{
			Section:  sectionName,
			Package:  pin.Package,
			Previous: rawText(entry.Value),
			Pinned:   pin.Constraint,
		})

		entry.Value = quote(pin.Constraint)
	}

	return changes
}

// rawText unquotes JSON strings and returns any other value verbatim.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}

// quote encodes s as a JSON string without HTML escaping, so ranges like ">=1 <2" stay readable.
func quote(s string) json.RawMessage {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	// Encoding a plain string cannot fail.
	_ = encoder.Encode(s)

	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
