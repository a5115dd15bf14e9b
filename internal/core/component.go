package core

import (
	"errors"
	"fmt"

	"github.com/comalice/nervetree/internal/primitives"
)

var errStopWalk = errors.New("stop walk")

// Component is a handle to one node of a Network. It is a small value and
// may be copied freely; all state lives in the Network arena. The zero
// Component is invalid.
type Component struct {
	net *Network
	h   Handle
}

// IsZero reports whether c is the zero Component.
func (c Component) IsZero() bool { return c.net == nil }

// Handle returns the arena index of c.
func (c Component) Handle() Handle { return c.h }

// Network returns the owning network.
func (c Component) Network() *Network { return c.net }

func (c Component) node() *node { return &c.net.nodes[c.h] }

// Name returns the component name.
func (c Component) Name() string { return c.node().name }

// Kind returns the component variant.
func (c Component) Kind() primitives.ComponentKind { return c.node().behavior.kind() }

// Function returns the function tag of a region or cortical area.
func (c Component) Function() string {
	switch b := c.node().behavior.(type) {
	case region:
		return b.function
	case cortical:
		return b.function
	}
	return ""
}

// AreaType returns the area type of a cortical area.
func (c Component) AreaType() primitives.AreaType {
	if b, ok := c.node().behavior.(cortical); ok {
		return b.area
	}
	return ""
}

// Layers returns the layer count of a cortical area, 0 otherwise.
func (c Component) Layers() int {
	if b, ok := c.node().behavior.(cortical); ok {
		return b.layers
	}
	return 0
}

// ActivityLevel returns the activity of a region or cortical area. ok is
// false for plain components, which carry no activity.
func (c Component) ActivityLevel() (level float64, ok bool) {
	if c.Kind() == primitives.KindComponent {
		return 0, false
	}
	return c.node().activity, true
}

// Parent returns the parent component, if any.
func (c Component) Parent() (Component, bool) {
	p := c.node().parent
	if p == NoHandle {
		return Component{}, false
	}
	return Component{net: c.net, h: p}, true
}

// IsRoot reports whether c has no parent.
func (c Component) IsRoot() bool { return c.node().parent == NoHandle }

// Children returns the children in insertion order.
func (c Component) Children() []Component {
	return c.wrap(c.node().children)
}

// Connections returns the connection targets in insertion order.
func (c Component) Connections() []Component {
	return c.wrap(c.node().connections)
}

func (c Component) wrap(hs []Handle) []Component {
	out := make([]Component, len(hs))
	for i, h := range hs {
		out[i] = Component{net: c.net, h: h}
	}
	return out
}

// AddChild appends child and makes c its parent. Re-adding an existing
// child is a no-op; a child with another parent is moved under c.
func (c Component) AddChild(child Component) error {
	if !c.net.owns(child) {
		return fmt.Errorf("add child to %s: %w", c.Name(), ErrForeignComponent)
	}
	return c.net.addChild(c.h, child.h)
}

// AddConnection records a directed connection to target. Duplicate
// connections are ignored and self-connections are allowed.
func (c Component) AddConnection(target Component) error {
	if !c.net.owns(target) {
		return fmt.Errorf("connect %s: %w", c.Name(), ErrForeignComponent)
	}
	c.net.addConnection(c.h, target.h)
	return nil
}

// Path returns the names from the root to c joined by "/".
func (c Component) Path() string { return c.net.path(c.h) }

func (c Component) String() string { return c.Path() }

// Process transforms sig according to the component variant and returns
// the output signals. It never forwards anything.
func (c Component) Process(sig primitives.Signal) []primitives.Signal {
	return c.net.process(c.h, sig)
}

// Send processes sig locally and forwards every output along c's
// connections, depth-first. Only the direct outputs of c are returned.
func (c Component) Send(sig primitives.Signal) []primitives.Signal {
	return c.net.dispatch(c.h, sig, false).Direct
}

// Find returns the first component named name in c's subtree, searching
// depth-first in pre-order and including c itself.
func (c Component) Find(name string) (Component, bool) {
	var found Component
	_ = c.Walk(func(x Component, _ int) error {
		if x.Name() == name {
			found = x
			return errStopWalk
		}
		return nil
	})
	return found, !found.IsZero()
}

func (c Component) child(name string) (Component, bool) {
	for _, h := range c.node().children {
		if c.net.nodes[h].name == name {
			return Component{net: c.net, h: h}, true
		}
	}
	return Component{}, false
}

// Walk visits c and its descendants in pre-order with their depth below c.
// Returning an error from fn stops the walk and is returned, except for the
// internal stop sentinel used by Find.
func (c Component) Walk(fn func(c Component, depth int) error) error {
	err := c.walk(fn, 0)
	if err == errStopWalk {
		return nil
	}
	return err
}

func (c Component) walk(fn func(Component, int) error, depth int) error {
	if err := fn(c, depth); err != nil {
		return err
	}
	for _, h := range c.node().children {
		if err := (Component{net: c.net, h: h}).walk(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}
