// Signal provides the value type passed between components.
//
// Signals are small values and are copied on every hop. Once created they
// should not be mutated; use the With* helpers to derive a new Signal.
//
// # Clamping
//
// Strength is clamped into [0, 1] by NewSignal and by every With* helper.
// NaN becomes 0. Out-of-range values are never rejected.
//
// Example:
//
//	sig := NewSignal("motor_command", 0.8, "move_right_hand")
//	louder := sig.WithStrength(sig.Strength * 1.5) // 1.0
package primitives

import (
	"fmt"
	"math"
)

// Signal is a discrete unit of information passed between components.
type Signal struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Strength float64 `json:"strength" yaml:"strength"`
	// Payload is never inspected by generic dispatch.
	Payload any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewSignal creates a Signal with its strength clamped into [0, 1].
func NewSignal(kind string, strength float64, payload any) Signal {
	return Signal{
		Kind:     kind,
		Strength: Clamp(strength),
		Payload:  payload,
	}
}

// Clamp bounds v to [0, 1]. NaN maps to 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// WithStrength returns a copy of s with a new, clamped strength.
func (s Signal) WithStrength(strength float64) Signal {
	s.Strength = Clamp(strength)
	return s
}

// WithKind returns a copy of s relabelled to kind.
func (s Signal) WithKind(kind string) Signal {
	s.Kind = kind
	return s
}

func (s Signal) String() string {
	return fmt.Sprintf("%s(%.3f)", s.Kind, s.Strength)
}
