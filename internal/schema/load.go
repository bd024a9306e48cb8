package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses an extension API dump from disk. The version label
// is the one the generator was asked to process, not the one in the header.
func Load(path string, version string) (*ExtensionAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extension API dump not found at %s: %w", path, err)
	}
	return Parse(data, version)
}

// Parse decodes an extension API dump and validates its structural invariants.
func Parse(data []byte, version string) (*ExtensionAPI, error) {
	var api ExtensionAPI
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, fmt.Errorf("failed to parse extension API for %s: %w", version, err)
	}
	api.Version = version
	if err := api.Validate(); err != nil {
		return nil, err
	}
	return &api, nil
}
