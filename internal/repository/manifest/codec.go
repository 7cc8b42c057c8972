package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/oshokin/dashboard-builder/internal/domain/build"
)

const (
	// indent is the indentation unit of the written manifest.
	indent = "  "
)

// object is a JSON object whose members keep their file order and raw values.
type object = orderedmap.OrderedMap[string, json.RawMessage]

// ErrInvalidManifest is returned when the file is not a JSON object.
var ErrInvalidManifest = errors.New("manifest is not a valid JSON object")

// Decode parses a manifest keeping the order of its keys.
// A repeated key keeps its first position and its last value.
func Decode(data []byte) (*build.Manifest, error) {
	top, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	if top == nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidManifest)
	}

	m := &build.Manifest{
		Fields: make([]build.Field, 0, top.Len()),
	}

	for pair := top.Oldest(); pair != nil; pair = pair.Next() {
		field := build.Field{Key: pair.Key, Value: pair.Value}
		if build.IsDependencySection(pair.Key) {
			field.Section, err = decodeSection(pair.Value)
			if err != nil {
				return nil, err
			}
		}

		m.Fields = append(m.Fields, field)
	}

	return m, nil
}

// Encode renders the manifest with two-space indentation and a trailing newline.
func Encode(m *build.Manifest) ([]byte, error) {
	var buf bytes.Buffer

	if len(m.Fields) == 0 {
		buf.WriteString("{}\n")

		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")

	for i, field := range m.Fields {
		buf.WriteString(indent)
		writeString(&buf, field.Key)
		buf.WriteString(": ")

		var err error
		if field.Section != nil {
			err = writeSection(&buf, field.Section)
		} else {
			err = json.Indent(&buf, bytes.TrimSpace(field.Value), indent, indent)
		}

		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", field.Key, err)
		}

		if i < len(m.Fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

// decodeSection returns nil for a section that is not an object; such a value
// is written back untouched.
func decodeSection(raw json.RawMessage) (*build.Section, error) {
	members, err := decodeObject(raw)
	if err != nil || members == nil {
		return nil, err
	}

	section := &build.Section{
		Entries: make([]build.Entry, 0, members.Len()),
	}

	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		section.Entries = append(section.Entries, build.Entry{Name: pair.Key, Value: pair.Value})
	}

	return section, nil
}

// decodeObject returns nil, without an error, for valid JSON that is not an object.
func decodeObject(data []byte) (*object, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidManifest)
	}

	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '{' {
		return nil, nil //nolint:nilnil // Not an object.
	}

	members := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, members); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return members, nil
}

func writeSection(buf *bytes.Buffer, section *build.Section) error {
	if len(section.Entries) == 0 {
		buf.WriteString("{}")

		return nil
	}

	nested := indent + indent

	buf.WriteString("{\n")

	for i, entry := range section.Entries {
		buf.WriteString(nested)
		writeString(buf, entry.Name)
		buf.WriteString(": ")

		if err := json.Indent(buf, bytes.TrimSpace(entry.Value), nested, indent); err != nil {
			return fmt.Errorf("encode %q: %w", entry.Name, err)
		}

		if i < len(section.Entries)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString(indent)
	buf.WriteByte('}')

	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	// Strings always encode; drop the newline Encode appends.
	_ = encoder.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
