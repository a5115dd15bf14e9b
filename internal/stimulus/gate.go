package stimulus

import (
	"fmt"
	"strconv"
	"strings"
)

// Gate decides whether a stimulus reaches the network.
type Gate interface {
	Allow(s Stimulus) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(Stimulus) bool

func (f GateFunc) Allow(s Stimulus) bool { return f(s) }

// ExpressionGate evaluates a "field op value" expression against a
// stimulus, e.g. "strength >= 0.5" or "kind == motor_command". Fields are
// strength, kind and target; strength supports == != < <= > >=, the string
// fields == and !=.
type ExpressionGate struct {
	field string
	op    string
	str   string
	num   float64
}

// ParseGate compiles expr into an ExpressionGate.
func ParseGate(expr string) (*ExpressionGate, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return nil, fmt.Errorf("gate %q: want \"field op value\"", expr)
	}
	g := &ExpressionGate{field: parts[0], op: parts[1], str: parts[2]}
	switch g.field {
	case "strength":
		switch g.op {
		case "==", "!=", "<", "<=", ">", ">=":
		default:
			return nil, fmt.Errorf("gate %q: unknown operator %q", expr, g.op)
		}
		v, err := strconv.ParseFloat(g.str, 64)
		if err != nil {
			return nil, fmt.Errorf("gate %q: %w", expr, err)
		}
		g.num = v
	case "kind", "target":
		if g.op != "==" && g.op != "!=" {
			return nil, fmt.Errorf("gate %q: operator %q not supported on %s", expr, g.op, g.field)
		}
	default:
		return nil, fmt.Errorf("gate %q: unknown field %q", expr, g.field)
	}
	return g, nil
}

func (g *ExpressionGate) Allow(s Stimulus) bool {
	switch g.field {
	case "strength":
		v := s.Signal.Strength
		switch g.op {
		case "==":
			return v == g.num
		case "!=":
			return v != g.num
		case "<":
			return v < g.num
		case "<=":
			return v <= g.num
		case ">":
			return v > g.num
		case ">=":
			return v >= g.num
		}
	case "kind":
		return (s.Signal.Kind == g.str) == (g.op == "==")
	case "target":
		return (s.Target == g.str) == (g.op == "==")
	}
	return false
}

func (g *ExpressionGate) String() string {
	return g.field + " " + g.op + " " + g.str
}
