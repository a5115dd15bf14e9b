// Package core provides the runtime tier of the nervous-system model.
// Options for configuring Network instances.
package core

import "go.uber.org/zap"

// Option applies configuration to a Network via functional options.
type Option func(*Network)

// WithID sets the network identifier.
func WithID(id string) Option {
	return func(n *Network) {
		n.id = id
	}
}

// WithLogger configures structured logging. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithMaxHops bounds how many hops a Send forwards past its origin.
// 0 removes the bound; the per-Send visited-edge set still guarantees
// termination on cyclic graphs. Negative values are ignored.
func WithMaxHops(hops int) Option {
	return func(n *Network) {
		if hops >= 0 {
			n.maxHops = hops
		}
	}
}

// WithPublisher receives every delivery made by Send.
func WithPublisher(p SignalPublisher) Option {
	return func(n *Network) {
		n.publisher = p
	}
}

// WithPersister configures where Persist stores snapshots.
func WithPersister(p Persister) Option {
	return func(n *Network) {
		n.persister = p
	}
}

// WithVisualizer configures the renderer used by Visualize.
func WithVisualizer(v Visualizer) Option {
	return func(n *Network) {
		n.visualizer = v
	}
}
