package modelio

import (
	"bytes"
	"io"
	"os"

	"encoding/json"

	"github.com/germolinal/simple-sub002/pkg/model"
)

// LoadJSON reads a JSON model description from path and resolves it into a
// *model.Model. Unknown fields are rejected, matching the format's
// deny_unknown_fields contract.
func LoadJSON(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, userErr("opening model file %q: %v", path, err)
	}
	defer f.Close()
	return ParseJSON(f)
}

// ParseJSON decodes JSON from r and resolves it into a *model.Model.
func ParseJSON(r io.Reader) (*model.Model, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, userErr("decoding JSON model: %v", err)
	}
	return Resolve(&doc)
}

// MarshalJSON serializes a Document back to JSON, mainly useful for tests
// round-tripping a hand-built Document through the same decode path the
// CLI uses.
func MarshalJSON(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
