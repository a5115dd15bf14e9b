// Package primitives provides versioning utilities for NetworkConfig.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion computes a deterministic version for a NetworkConfig.
// Priority: user-provided config.Version, else the first 8 bytes of the
// SHA256 of the config JSON. Equal structures always share a version.
func ComputeVersion(config *NetworkConfig) string {
	if config.Version != "" {
		return config.Version
	}

	data, err := json.Marshal(config)
	if err != nil {
		return "invalid"
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
