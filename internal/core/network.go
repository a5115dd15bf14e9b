// Package core provides the runtime tier of the nervous-system model: the
// Network arena that owns every component, the tree and connection graph
// built over integer handles, and signal dispatch.
//
// A Network is not safe for concurrent use. Hosts that share one across
// goroutines must serialize access themselves.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/primitives"
)

var (
	ErrForeignComponent = errors.New("component belongs to a different network")
	ErrCycle            = errors.New("child is the parent or one of its ancestors")
	ErrNotFound         = errors.New("component not found")
)

// DefaultMaxHops bounds how far a single Send forwards signals.
const DefaultMaxHops = 32

// Handle indexes a component inside its Network.
type Handle int

// NoHandle marks an absent parent.
const NoHandle Handle = -1

type node struct {
	name        string
	behavior    behavior
	activity    float64
	parent      Handle
	children    []Handle
	connections []Handle
}

// Network owns an arena of components. Parent and child links are handles
// into the arena; connections are a separate adjacency list per node.
type Network struct {
	id      string
	nodes   []node
	maxHops int
	logger  *zap.Logger

	publisher  SignalPublisher
	persister  Persister
	visualizer Visualizer
}

// NewNetwork creates an empty Network. Without WithID it gets a random ID.
func NewNetwork(opts ...Option) *Network {
	n := newNetwork(opts)
	if n.id == "" {
		n.id = uuid.NewString()
	}
	return n
}

func newNetwork(opts []Option) *Network {
	n := &Network{
		maxHops: DefaultMaxHops,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ID returns the network identifier.
func (n *Network) ID() string { return n.id }

// Len returns the number of components in the arena.
func (n *Network) Len() int { return len(n.nodes) }

// MaxHops returns the forwarding depth bound; 0 means unbounded.
func (n *Network) MaxHops() int { return n.maxHops }

// NewComponent adds a plain passthrough component.
func (n *Network) NewComponent(name string) Component {
	return n.add(name, passthrough{})
}

// NewRegion adds a brain region with the given function tag.
func (n *Network) NewRegion(name, function string) Component {
	return n.add(name, region{function: function})
}

// NewCortical adds a cortical area. layers <= 0 selects DefaultLayers.
// An unknown area type behaves like an association area.
func (n *Network) NewCortical(name, function string, area primitives.AreaType, layers int) Component {
	if layers <= 0 {
		layers = primitives.DefaultLayers
	}
	return n.add(name, cortical{region: region{function: function}, area: area, layers: layers})
}

func (n *Network) add(name string, b behavior) Component {
	h := Handle(len(n.nodes))
	n.nodes = append(n.nodes, node{name: name, behavior: b, parent: NoHandle})
	return Component{net: n, h: h}
}

// Component returns the component for h.
func (n *Network) Component(h Handle) (Component, bool) {
	if h < 0 || int(h) >= len(n.nodes) {
		return Component{}, false
	}
	return Component{net: n, h: h}, true
}

// Components returns every component in creation order.
func (n *Network) Components() []Component {
	out := make([]Component, len(n.nodes))
	for i := range n.nodes {
		out[i] = Component{net: n, h: Handle(i)}
	}
	return out
}

// Roots returns the components without a parent, in creation order.
func (n *Network) Roots() []Component {
	var roots []Component
	for i := range n.nodes {
		if n.nodes[i].parent == NoHandle {
			roots = append(roots, Component{net: n, h: Handle(i)})
		}
	}
	return roots
}

// Root returns the single root of a fully assembled tree.
func (n *Network) Root() (Component, error) {
	roots := n.Roots()
	if len(roots) != 1 {
		return Component{}, fmt.Errorf("network %s has %d roots, want 1", n.id, len(roots))
	}
	return roots[0], nil
}

// Find returns the first component called name, searching each root
// depth-first in pre-order.
func (n *Network) Find(name string) (Component, bool) {
	for _, root := range n.Roots() {
		if c, ok := root.Find(name); ok {
			return c, true
		}
	}
	return Component{}, false
}

// Lookup resolves a "/"-joined path as returned by Component.Path.
func (n *Network) Lookup(path string) (Component, error) {
	segments := strings.Split(path, primitives.PathSeparator)
	for _, root := range n.Roots() {
		if root.Name() != segments[0] {
			continue
		}
		current := root
		found := true
		for _, seg := range segments[1:] {
			next, ok := current.child(seg)
			if !ok {
				found = false
				break
			}
			current = next
		}
		if found {
			return current, nil
		}
	}
	return Component{}, fmt.Errorf("%q: %w", path, ErrNotFound)
}

// ResetActivity returns every region to zero activity.
func (n *Network) ResetActivity() {
	for i := range n.nodes {
		n.nodes[i].activity = 0
	}
}

func (n *Network) owns(c Component) bool {
	return c.net == n && c.h >= 0 && int(c.h) < len(n.nodes)
}

// addChild implements Component.AddChild over handles.
func (n *Network) addChild(parent, child Handle) error {
	if parent == child || n.isAncestor(child, parent) {
		return fmt.Errorf("add %s under %s: %w", n.nodes[child].name, n.nodes[parent].name, ErrCycle)
	}

	c := &n.nodes[child]
	if c.parent == parent {
		return nil
	}
	if c.parent != NoHandle {
		old := &n.nodes[c.parent]
		old.children = removeHandle(old.children, child)
		n.logger.Debug("component reparented",
			zap.String("component", c.name),
			zap.String("from", old.name),
			zap.String("to", n.nodes[parent].name))
	}

	c.parent = parent
	n.nodes[parent].children = append(n.nodes[parent].children, child)
	return nil
}

// isAncestor reports whether a is h or an ancestor of h.
func (n *Network) isAncestor(a, h Handle) bool {
	for cur := h; cur != NoHandle; cur = n.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

func (n *Network) addConnection(src, dst Handle) {
	s := &n.nodes[src]
	for _, h := range s.connections {
		if h == dst {
			return
		}
	}
	s.connections = append(s.connections, dst)
}

func (n *Network) path(h Handle) string {
	var names []string
	for cur := h; cur != NoHandle; cur = n.nodes[cur].parent {
		names = append(names, n.nodes[cur].name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, primitives.PathSeparator)
}

func (n *Network) process(h Handle, sig primitives.Signal) []primitives.Signal {
	nd := &n.nodes[h]
	return nd.behavior.process(nd, sig)
}

func removeHandle(hs []Handle, h Handle) []Handle {
	for i, x := range hs {
		if x == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}
