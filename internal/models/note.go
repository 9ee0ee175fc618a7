// Package models defines core data structures for notes, search parameters, and results.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultCategory is assigned to notes that do not specify a category.
const DefaultCategory = "General"

// Note is the uniform note record used throughout the engine.
// Field order is fixed: the embedding cache fingerprints the marshaled
// collection, so serialization must be deterministic.
type Note struct {
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// noteObject is the object form of the external notes format. Category is a
// pointer so that a present-but-empty category is preserved as-is while a
// missing one gets the default.
type noteObject struct {
	Content  string   `json:"content"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
}

// RawNote is one item of the external notes format: either a bare JSON
// string or an object with optional content/category/tags fields.
// Decoding any other JSON kind fails with UnsupportedNoteTypeError.
type RawNote struct {
	str *string
	obj *noteObject
}

// UnsupportedNoteTypeError reports an input item that is neither a string
// nor an object, naming the offending JSON kind.
type UnsupportedNoteTypeError struct {
	Type string
}

func (e *UnsupportedNoteTypeError) Error() string {
	return fmt.Sprintf("unsupported note type: %s", e.Type)
}

// RawFromString returns a RawNote holding a bare string.
func RawFromString(s string) RawNote {
	return RawNote{str: &s}
}

// RawFromNote returns a RawNote holding the object form of n.
func RawFromNote(n Note) RawNote {
	cat := n.Category
	return RawNote{obj: &noteObject{Content: n.Content, Category: &cat, Tags: n.Tags}}
}

// UnmarshalJSON decodes either a JSON string or a JSON object.
func (r *RawNote) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &UnsupportedNoteTypeError{Type: "empty"}
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		r.str = &s
		r.obj = nil
		return nil
	case '{':
		var obj noteObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		r.obj = &obj
		r.str = nil
		return nil
	default:
		return &UnsupportedNoteTypeError{Type: jsonKind(trimmed[0])}
	}
}

// MarshalJSON writes the original shape back out (string stays a string).
func (r RawNote) MarshalJSON() ([]byte, error) {
	switch {
	case r.str != nil:
		return json.Marshal(*r.str)
	case r.obj != nil:
		return json.Marshal(r.obj)
	default:
		return nil, &UnsupportedNoteTypeError{Type: "empty"}
	}
}

// Note returns the uniform record for this item: a bare string becomes
// {content, "General", []}; object fields are defaulted when missing.
func (r RawNote) Note() (Note, error) {
	switch {
	case r.str != nil:
		return Note{Content: *r.str, Category: DefaultCategory, Tags: []string{}}, nil
	case r.obj != nil:
		n := Note{Content: r.obj.Content, Category: DefaultCategory, Tags: r.obj.Tags}
		if r.obj.Category != nil {
			n.Category = *r.obj.Category
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		return n, nil
	default:
		return Note{}, &UnsupportedNoteTypeError{Type: "empty"}
	}
}

// Normalize converts heterogeneous raw items into uniform Note records,
// preserving order. It is pure: inputs are not modified.
func Normalize(raw []RawNote) ([]Note, error) {
	notes := make([]Note, 0, len(raw))
	for i, r := range raw {
		n, err := r.Note()
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// jsonKind names the JSON kind starting with the given byte, for error messages.
func jsonKind(b byte) string {
	switch b {
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return "number"
	default:
		return "unknown"
	}
}
