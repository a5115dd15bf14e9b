// NetworkConfig is the declarative description of a component tree and its
// connection graph. It is what builders emit and what core.FromConfig
// consumes. Components are addressed by "/"-joined paths from the root, the
// same form returned by Component.Path at runtime.

package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// PathSeparator joins component names into a path.
const PathSeparator = "/"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid network config")

// ComponentConfig describes one component and, recursively, its children.
type ComponentConfig struct {
	Name     string             `json:"name" yaml:"name"`
	Kind     ComponentKind      `json:"kind,omitempty" yaml:"kind,omitempty"` // empty means KindComponent
	Function string             `json:"function,omitempty" yaml:"function,omitempty"`
	AreaType AreaType           `json:"areaType,omitempty" yaml:"areaType,omitempty"`
	Layers   int                `json:"layers,omitempty" yaml:"layers,omitempty"` // cortical only, 0 means DefaultLayers
	Children []*ComponentConfig `json:"children,omitempty" yaml:"children,omitempty"`
}

// ConnectionConfig is a directed edge between two component paths.
type ConnectionConfig struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// NetworkConfig is the complete network description.
type NetworkConfig struct {
	Version     string             `json:"version,omitempty" yaml:"version,omitempty"`
	ID          string             `json:"id" yaml:"id"`
	Root        *ComponentConfig   `json:"root" yaml:"root"`
	Connections []ConnectionConfig `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// NewComponentConfig creates a plain component.
func NewComponentConfig(name string) *ComponentConfig {
	return &ComponentConfig{Name: name, Kind: KindComponent}
}

// NewRegionConfig creates a brain region with a function tag.
func NewRegionConfig(name, function string) *ComponentConfig {
	return &ComponentConfig{Name: name, Kind: KindRegion, Function: function}
}

// NewCorticalConfig creates a cortical area with the default layer count.
func NewCorticalConfig(name, function string, area AreaType) *ComponentConfig {
	return &ComponentConfig{
		Name:     name,
		Kind:     KindCortical,
		Function: function,
		AreaType: area,
		Layers:   DefaultLayers,
	}
}

// EffectiveKind resolves the empty kind to KindComponent.
func (c *ComponentConfig) EffectiveKind() ComponentKind {
	if c.Kind == "" {
		return KindComponent
	}
	return c.Kind
}

// EffectiveLayers resolves a zero layer count to DefaultLayers.
func (c *ComponentConfig) EffectiveLayers() int {
	if c.Layers == 0 {
		return DefaultLayers
	}
	return c.Layers
}

// AddChild appends a child and returns c for chaining.
func (c *ComponentConfig) AddChild(child *ComponentConfig) *ComponentConfig {
	c.Children = append(c.Children, child)
	return c
}

// Child returns the direct child called name, or nil.
func (c *ComponentConfig) Child(name string) *ComponentConfig {
	for _, child := range c.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Validate performs recursive validation of the ComponentConfig tree.
func (c *ComponentConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: component name is required", ErrInvalidConfig)
	}
	if strings.Contains(c.Name, PathSeparator) {
		return fmt.Errorf("%w: component name %q contains %q", ErrInvalidConfig, c.Name, PathSeparator)
	}

	kind := c.EffectiveKind()
	if !kind.Valid() {
		return fmt.Errorf("%w: invalid kind %q for component %s", ErrInvalidConfig, c.Kind, c.Name)
	}

	switch kind {
	case KindComponent:
		if c.Function != "" || c.AreaType != "" || c.Layers != 0 {
			return fmt.Errorf("%w: plain component %s cannot have function, areaType or layers", ErrInvalidConfig, c.Name)
		}
	case KindRegion:
		if c.Function == "" {
			return fmt.Errorf("%w: region %s requires a function", ErrInvalidConfig, c.Name)
		}
		if c.AreaType != "" || c.Layers != 0 {
			return fmt.Errorf("%w: region %s cannot have areaType or layers", ErrInvalidConfig, c.Name)
		}
	case KindCortical:
		if c.Function == "" {
			return fmt.Errorf("%w: cortical area %s requires a function", ErrInvalidConfig, c.Name)
		}
		if !c.AreaType.Valid() {
			return fmt.Errorf("%w: cortical area %s has invalid areaType %q", ErrInvalidConfig, c.Name, c.AreaType)
		}
		if c.Layers < 0 {
			return fmt.Errorf("%w: cortical area %s has negative layers %d", ErrInvalidConfig, c.Name, c.Layers)
		}
	}

	seen := make(map[string]struct{}, len(c.Children))
	for i, child := range c.Children {
		if child == nil {
			return fmt.Errorf("%w: child %d of %s is nil", ErrInvalidConfig, i, c.Name)
		}
		if _, dup := seen[child.Name]; dup {
			return fmt.Errorf("%w: duplicate child %q in %s", ErrInvalidConfig, child.Name, c.Name)
		}
		seen[child.Name] = struct{}{}
		if err := child.Validate(); err != nil {
			return fmt.Errorf("child %d (%s) of %s: %w", i, child.Name, c.Name, err)
		}
	}

	return nil
}

// Walk visits c and its descendants in pre-order, passing each node's path.
// Returning an error from fn stops the walk.
func (c *ComponentConfig) Walk(fn func(path string, c *ComponentConfig) error) error {
	return c.walk(c.Name, fn)
}

func (c *ComponentConfig) walk(path string, fn func(string, *ComponentConfig) error) error {
	if err := fn(path, c); err != nil {
		return err
	}
	for _, child := range c.Children {
		if err := child.walk(path+PathSeparator+child.Name, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the entire network configuration:
// - Non-empty ID and a root
// - The component tree validates (recursive)
// - Every connection endpoint resolves to a component path
func (n *NetworkConfig) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("%w: network ID is required", ErrInvalidConfig)
	}
	if n.Root == nil {
		return fmt.Errorf("%w: root component is required", ErrInvalidConfig)
	}
	if err := n.Root.Validate(); err != nil {
		return fmt.Errorf("root %s: %w", n.Root.Name, err)
	}

	paths := n.Flatten()
	for i, conn := range n.Connections {
		if _, ok := paths[conn.From]; !ok {
			return fmt.Errorf("%w: connection %d source %q not found", ErrInvalidConfig, i, conn.From)
		}
		if _, ok := paths[conn.To]; !ok {
			return fmt.Errorf("%w: connection %d target %q not found", ErrInvalidConfig, i, conn.To)
		}
	}
	return nil
}

// Flatten returns every component keyed by its path.
func (n *NetworkConfig) Flatten() map[string]*ComponentConfig {
	m := make(map[string]*ComponentConfig)
	if n.Root == nil {
		return m
	}
	_ = n.Root.Walk(func(path string, c *ComponentConfig) error {
		m[path] = c
		return nil
	})
	return m
}

// FindPath resolves a component by path (e.g. "Root/Brain/Cerebellum").
func (n *NetworkConfig) FindPath(path string) (*ComponentConfig, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}
	if n.Root == nil {
		return nil, errors.New("network has no root")
	}
	segments := strings.Split(path, PathSeparator)
	if segments[0] != n.Root.Name {
		return nil, fmt.Errorf("root %q not found (network root is %q)", segments[0], n.Root.Name)
	}
	current := n.Root
	for i := 1; i < len(segments); i++ {
		next := current.Child(segments[i])
		if next == nil {
			prefix := strings.Join(segments[:i], PathSeparator)
			return nil, fmt.Errorf("child %q not found in %q", segments[i], prefix)
		}
		current = next
	}
	return current, nil
}
