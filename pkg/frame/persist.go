package frame

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveSpec writes a box spec to a JSON file, creating the directory if
// needed.
func SaveSpec(path string, spec *BoxSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSpec reads a box spec from a JSON file. Specs saved before IDs were
// introduced get a fresh one.
func LoadSpec(path string) (*BoxSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec BoxSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse box spec %s: %w", path, err)
	}
	if spec.ID == "" {
		spec.ID = uuid.New().String()[:8]
	}
	return &spec, nil
}
