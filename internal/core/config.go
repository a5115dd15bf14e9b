package core

import (
	"fmt"

	"github.com/comalice/nervetree/internal/primitives"
)

// FromConfig validates cfg and assembles it into a new Network using only
// the public construction and connection API. The network ID defaults to
// cfg.ID unless WithID is given.
func FromConfig(cfg primitives.NetworkConfig, opts ...Option) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := newNetwork(opts)
	if n.id == "" {
		n.id = cfg.ID
	}

	byPath := make(map[string]Component)
	if _, err := n.build(cfg.Root, cfg.Root.Name, byPath); err != nil {
		return nil, err
	}

	for i, conn := range cfg.Connections {
		from, to := byPath[conn.From], byPath[conn.To]
		if err := from.AddConnection(to); err != nil {
			return nil, fmt.Errorf("connection %d: %w", i, err)
		}
	}
	return n, nil
}

func (n *Network) build(c *primitives.ComponentConfig, path string, byPath map[string]Component) (Component, error) {
	var comp Component
	switch c.EffectiveKind() {
	case primitives.KindRegion:
		comp = n.NewRegion(c.Name, c.Function)
	case primitives.KindCortical:
		comp = n.NewCortical(c.Name, c.Function, c.AreaType, c.EffectiveLayers())
	default:
		comp = n.NewComponent(c.Name)
	}
	byPath[path] = comp

	for _, childCfg := range c.Children {
		child, err := n.build(childCfg, path+primitives.PathSeparator+childCfg.Name, byPath)
		if err != nil {
			return Component{}, err
		}
		if err := comp.AddChild(child); err != nil {
			return Component{}, err
		}
	}
	return comp, nil
}

// Config exports the live tree and connections as a NetworkConfig. The
// network must have exactly one root, which makes every connection target
// part of that tree.
func (n *Network) Config() (primitives.NetworkConfig, error) {
	root, err := n.Root()
	if err != nil {
		return primitives.NetworkConfig{}, err
	}

	cfg := primitives.NetworkConfig{ID: n.id, Root: exportComponent(root)}
	_ = root.Walk(func(c Component, _ int) error {
		for _, target := range c.Connections() {
			cfg.Connections = append(cfg.Connections, primitives.ConnectionConfig{
				From: c.Path(),
				To:   target.Path(),
			})
		}
		return nil
	})

	if err := cfg.Validate(); err != nil {
		return primitives.NetworkConfig{}, fmt.Errorf("export network %s: %w", n.id, err)
	}
	return cfg, nil
}

func exportComponent(c Component) *primitives.ComponentConfig {
	var out *primitives.ComponentConfig
	switch c.Kind() {
	case primitives.KindRegion:
		out = primitives.NewRegionConfig(c.Name(), c.Function())
	case primitives.KindCortical:
		out = primitives.NewCorticalConfig(c.Name(), c.Function(), c.AreaType())
		out.Layers = c.Layers()
	default:
		out = primitives.NewComponentConfig(c.Name())
	}
	for _, child := range c.Children() {
		out.AddChild(exportComponent(child))
	}
	return out
}
