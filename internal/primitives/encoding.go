package primitives

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadNetworkConfig decodes and validates a YAML (or JSON) network description.
func LoadNetworkConfig(data []byte) (NetworkConfig, error) {
	var cfg NetworkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return NetworkConfig{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return NetworkConfig{}, err
	}
	return cfg, nil
}

// ReadNetworkFile loads a network description from disk.
func ReadNetworkFile(path string) (NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NetworkConfig{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := LoadNetworkConfig(data)
	if err != nil {
		return NetworkConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// EncodeYAML serializes the config in the same shape LoadNetworkConfig reads.
func EncodeYAML(cfg NetworkConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}
