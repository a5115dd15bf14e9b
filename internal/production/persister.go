// Package production provides production integrations: snapshot persistence,
// delivery publishing, and visualization.
// Implements core interfaces using stdlib where possible.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/nervetree/internal/core"
)

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeSnapshot(ctx, filepath.Join(p.dir, snapshot.NetworkID+".json"), data)
}

func (p *JSONPersister) Load(ctx context.Context, networkID string) (core.Snapshot, error) {
	data, err := readSnapshot(ctx, filepath.Join(p.dir, networkID+".json"), networkID)
	if err != nil {
		return core.Snapshot{}, err
	}

	var snapshot core.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return finishLoad(snapshot, networkID)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeSnapshot(ctx, filepath.Join(p.dir, snapshot.NetworkID+".yaml"), data)
}

func (p *YAMLPersister) Load(ctx context.Context, networkID string) (core.Snapshot, error) {
	data, err := readSnapshot(ctx, filepath.Join(p.dir, networkID+".yaml"), networkID)
	if err != nil {
		return core.Snapshot{}, err
	}

	var snapshot core.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return finishLoad(snapshot, networkID)
}

// NewPersister returns the persister for format ("json" or "yaml").
func NewPersister(format, dir string) (core.Persister, error) {
	switch format {
	case "json":
		return NewJSONPersister(dir)
	case "yaml", "yml", "":
		return NewYAMLPersister(dir)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

func writeSnapshot(ctx context.Context, fn string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func readSnapshot(ctx context.Context, fn, networkID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("network %q: %w", networkID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}

func finishLoad(snapshot core.Snapshot, networkID string) (core.Snapshot, error) {
	snapshot.NetworkID = networkID
	if err := snapshot.Config.Validate(); err != nil {
		return core.Snapshot{}, fmt.Errorf("config validation after load: %w", err)
	}
	return snapshot, nil
}
