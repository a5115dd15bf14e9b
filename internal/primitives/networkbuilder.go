// Package primitives includes builder helpers for NetworkConfig.
package primitives

// NetworkBuilder builds a hierarchical NetworkConfig fluently.
//
//	b := NewNetworkBuilder("demo", "NervousSystem")
//	b.Root().
//		Component("Brain").
//		Cortical("PrimaryMotorCortex", "motor_control", AreaMotor).Up().
//		Region("Cerebellum", "motor_coordination")
//	b.Connect("NervousSystem/Brain/PrimaryMotorCortex", "NervousSystem/Brain/Cerebellum")
//	cfg, err := b.Build()
type NetworkBuilder struct {
	config *NetworkConfig
	root   *ComponentBuilder
}

// ComponentBuilder configures one component and nests children under it.
type ComponentBuilder struct {
	nb     *NetworkBuilder
	parent *ComponentBuilder
	config *ComponentConfig
	path   string
}

// NewNetworkBuilder creates a builder whose root is a plain component.
func NewNetworkBuilder(id, rootName string) *NetworkBuilder {
	root := NewComponentConfig(rootName)
	b := &NetworkBuilder{
		config: &NetworkConfig{ID: id, Root: root},
	}
	b.root = &ComponentBuilder{nb: b, config: root, path: rootName}
	return b
}

// Root returns the builder for the root component.
func (b *NetworkBuilder) Root() *ComponentBuilder {
	return b.root
}

// Connect adds a directed connection between two paths.
func (b *NetworkBuilder) Connect(from, to string) *NetworkBuilder {
	b.config.Connections = append(b.config.Connections, ConnectionConfig{From: from, To: to})
	return b
}

// Build validates and returns the finished config.
func (b *NetworkBuilder) Build() (NetworkConfig, error) {
	if err := b.config.Validate(); err != nil {
		return NetworkConfig{}, err
	}
	return *b.config, nil
}

// Component nests a plain component and returns its builder.
func (cb *ComponentBuilder) Component(name string) *ComponentBuilder {
	return cb.nest(NewComponentConfig(name))
}

// Region nests a brain region and returns its builder.
func (cb *ComponentBuilder) Region(name, function string) *ComponentBuilder {
	return cb.nest(NewRegionConfig(name, function))
}

// Cortical nests a cortical area and returns its builder.
func (cb *ComponentBuilder) Cortical(name, function string, area AreaType) *ComponentBuilder {
	return cb.nest(NewCorticalConfig(name, function, area))
}

// Layers overrides the layer count of a cortical area.
func (cb *ComponentBuilder) Layers(n int) *ComponentBuilder {
	cb.config.Layers = n
	return cb
}

// Up returns the parent builder; the root returns itself.
func (cb *ComponentBuilder) Up() *ComponentBuilder {
	if cb.parent == nil {
		return cb
	}
	return cb.parent
}

// Path returns the component's path from the root.
func (cb *ComponentBuilder) Path() string {
	return cb.path
}

// Connect adds a connection from this component to the given path.
func (cb *ComponentBuilder) Connect(to string) *ComponentBuilder {
	cb.nb.Connect(cb.path, to)
	return cb
}

func (cb *ComponentBuilder) nest(child *ComponentConfig) *ComponentBuilder {
	cb.config.AddChild(child)
	return &ComponentBuilder{
		nb:     cb.nb,
		parent: cb,
		config: child,
		path:   cb.path + PathSeparator + child.Name,
	}
}
