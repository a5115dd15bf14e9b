package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/primitives"
)

// Snapshot is the serializable state of a Network: its structure and the
// activity level of every region, keyed by path.
type Snapshot struct {
	NetworkID string                   `json:"networkID" yaml:"networkID"`
	Version   string                   `json:"version" yaml:"version"`
	Config    primitives.NetworkConfig `json:"config" yaml:"config"`
	Activity  map[string]float64       `json:"activity" yaml:"activity"`
	Timestamp time.Time                `json:"timestamp" yaml:"timestamp"`
}

// Snapshot captures the current structure and activity levels.
func (n *Network) Snapshot() (Snapshot, error) {
	cfg, err := n.Config()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		NetworkID: n.id,
		Version:   primitives.ComputeVersion(&cfg),
		Config:    cfg,
		Activity:  n.Activity(),
		Timestamp: time.Now().UTC(),
	}, nil
}

// Activity returns the activity level of every region keyed by path.
func (n *Network) Activity() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range n.Components() {
		if level, ok := c.ActivityLevel(); ok {
			out[c.Path()] = level
		}
	}
	return out
}

// Restore applies the activity levels of snapshot to n. Levels are clamped
// into [0, 1]; entries for plain components are ignored.
func (n *Network) Restore(snapshot Snapshot) error {
	if snapshot.NetworkID != n.id {
		return fmt.Errorf("network ID mismatch: have %q, snapshot %q", n.id, snapshot.NetworkID)
	}
	for path, level := range snapshot.Activity {
		c, err := n.Lookup(path)
		if err != nil {
			return fmt.Errorf("restore activity: %w", err)
		}
		if c.Kind() == primitives.KindComponent {
			continue
		}
		c.node().activity = primitives.Clamp(level)
	}
	n.logger.Info("network restored",
		zap.String("network", n.id),
		zap.String("version", snapshot.Version),
		zap.Int("regions", len(snapshot.Activity)))
	return nil
}

// FromSnapshot rebuilds a Network from a snapshot's config and activity.
func FromSnapshot(snapshot Snapshot, opts ...Option) (*Network, error) {
	opts = append(opts, WithID(snapshot.NetworkID))
	n, err := FromConfig(snapshot.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("rebuild network %s: %w", snapshot.NetworkID, err)
	}
	if err := n.Restore(snapshot); err != nil {
		return nil, err
	}
	return n, nil
}

var errNoPersister = errors.New("no persister configured")

// Persist saves a snapshot through the configured Persister.
func (n *Network) Persist(ctx context.Context) (Snapshot, error) {
	if n.persister == nil {
		return Snapshot{}, errNoPersister
	}
	snapshot, err := n.Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	if err := n.persister.Save(ctx, snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("persist network %s: %w", n.id, err)
	}
	return snapshot, nil
}

// Visualize renders the network through the configured Visualizer.
func (n *Network) Visualize() (string, error) {
	if n.visualizer == nil {
		return "", errors.New("no visualizer configured, use WithVisualizer(&production.DefaultVisualizer{})")
	}
	cfg, err := n.Config()
	if err != nil {
		return "", err
	}
	return n.visualizer.ExportDOT(cfg, n.Activity()), nil
}
