// Package primitives provides the foundational data structures for the
// nervous-system model: the Signal value type, the component kind and area
// type enums, and the declarative NetworkConfig tree used to describe a
// network before it is built into a runtime arena.
//
// Core invariants:
// - Signal strength is always within [0, 1] (clamped at construction)
// - Signals are values; transformations return new Signals
// - NetworkConfig sibling names are unique, so paths resolve unambiguously
package primitives
