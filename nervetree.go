// Package nervetree is the public entry point to the nervous-system model:
// a tree of components that process signals and forward them along
// directed connections.
//
//	n, _ := nervetree.Canonical()
//	m1, _ := n.Find("PrimaryMotorCortex")
//	out := m1.Send(nervetree.NewSignal("motor_command", 0.8, "move_right_hand"))
package nervetree

import (
	"github.com/comalice/nervetree/internal/anatomy"
	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

type (
	Signal          = primitives.Signal
	AreaType        = primitives.AreaType
	ComponentKind   = primitives.ComponentKind
	NetworkConfig   = primitives.NetworkConfig
	ComponentConfig = primitives.ComponentConfig
	Network         = core.Network
	Component       = core.Component
	Handle          = core.Handle
	Option          = core.Option
	Trace           = core.Trace
	Delivery        = core.Delivery
	Snapshot        = core.Snapshot
)

const (
	Motor       = primitives.AreaMotor
	Sensory     = primitives.AreaSensory
	Association = primitives.AreaAssociation
)

var (
	ErrCycle            = core.ErrCycle
	ErrForeignComponent = core.ErrForeignComponent
	ErrNotFound         = core.ErrNotFound
	ErrInvalidConfig    = primitives.ErrInvalidConfig
)

var (
	WithID         = core.WithID
	WithLogger     = core.WithLogger
	WithMaxHops    = core.WithMaxHops
	WithPublisher  = core.WithPublisher
	WithPersister  = core.WithPersister
	WithVisualizer = core.WithVisualizer
)

// NewSignal returns a signal with strength clamped into [0, 1].
func NewSignal(kind string, strength float64, payload any) Signal {
	return primitives.NewSignal(kind, strength, payload)
}

// NewNetwork returns an empty network.
func NewNetwork(opts ...Option) *Network { return core.NewNetwork(opts...) }

// FromConfig builds a network from a description.
func FromConfig(cfg NetworkConfig, opts ...Option) (*Network, error) {
	return core.FromConfig(cfg, opts...)
}

// LoadConfig decodes and validates a YAML or JSON network description.
func LoadConfig(data []byte) (NetworkConfig, error) {
	return primitives.LoadNetworkConfig(data)
}

// Canonical builds the built-in human nervous-system anatomy.
func Canonical(opts ...Option) (*Network, error) { return anatomy.Build(opts...) }
