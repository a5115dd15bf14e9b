package core

import (
	"context"

	"github.com/comalice/nervetree/internal/primitives"
)

// Pluggable adapters. Implementations live in internal/production.

// SignalPublisher observes deliveries as Send makes them.
type SignalPublisher interface {
	Publish(ctx context.Context, d Delivery) error
	Close() error
}

// Persister stores and loads network snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, networkID string) (Snapshot, error)
}

// Visualizer renders a network description with its activity levels.
type Visualizer interface {
	ExportDOT(config primitives.NetworkConfig, activity map[string]float64) string
}
