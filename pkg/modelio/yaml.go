package modelio

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/germolinal/simple-sub002/pkg/model"
)

// LoadYAML reads a YAML model description from path and resolves it into a
// *model.Model, the second surface syntax alongside JSON, added because it
// round-trips the same tagged-variant schema with less punctuation.
func LoadYAML(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, userErr("opening model file %q: %v", path, err)
	}
	defer f.Close()
	return ParseYAML(f)
}

// ParseYAML decodes YAML from r and resolves it into a *model.Model.
func ParseYAML(r io.Reader) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, userErr("reading YAML model: %v", err)
	}
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, userErr("decoding YAML model: %v", err)
	}
	return Resolve(&doc)
}
