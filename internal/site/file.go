package site

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML spec file. Fields missing from the file keep their
// Default values.
func LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML document over Default.
func ParseYAML(data []byte) (Spec, error) {
	spec := Default()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("failed to decode spec: %w", err)
	}
	return spec, nil
}

// EncodeYAML encodes spec as a YAML document.
func EncodeYAML(spec Spec) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode spec: %w", err)
	}
	return data, nil
}
