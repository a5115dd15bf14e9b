package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/primitives"
)

// Delivery records one component processing one signal during a Send.
type Delivery struct {
	TraceID string
	// Hop is 0 for the origin and grows by one per forwarded connection.
	Hop int
	// From is the zero Component for the origin delivery.
	From    Component
	To      Component
	Input   primitives.Signal
	Outputs []primitives.Signal
}

// Trace is the full record of one top-level Send.
type Trace struct {
	ID         string
	Origin     Component
	Direct     []primitives.Signal
	Deliveries []Delivery
	// Dropped counts forwards cut off by the hop budget.
	Dropped int
}

type edge struct {
	from, to Handle
}

type pending struct {
	edge
	sig primitives.Signal
	hop int
}

// SendTrace behaves like c.Send but also returns every delivery made.
func (n *Network) SendTrace(c Component, sig primitives.Signal) Trace {
	if !n.owns(c) {
		return Trace{}
	}
	return n.dispatch(c.h, sig, true)
}

// dispatch runs a top-level send as an explicit depth-first work stack.
// Each directed edge carries at most one signal per call, which bounds the
// walk on cyclic graphs; maxHops bounds depth on top of that.
func (n *Network) dispatch(origin Handle, sig primitives.Signal, record bool) Trace {
	tr := Trace{
		ID:     uuid.NewString(),
		Origin: Component{net: n, h: origin},
	}

	direct := n.process(origin, sig)
	tr.Direct = direct
	n.deliver(&tr, Delivery{
		TraceID: tr.ID,
		To:      tr.Origin,
		Input:   sig,
		Outputs: direct,
	}, record)

	visited := make(map[edge]struct{})
	var stack []pending
	push := func(from Handle, outs []primitives.Signal, hop int) {
		conns := n.nodes[from].connections
		for i := len(outs) - 1; i >= 0; i-- {
			for j := len(conns) - 1; j >= 0; j-- {
				stack = append(stack, pending{edge: edge{from, conns[j]}, sig: outs[i], hop: hop})
			}
		}
	}
	push(origin, direct, 1)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[p.edge]; seen {
			continue
		}
		if n.maxHops > 0 && p.hop > n.maxHops {
			tr.Dropped++
			continue
		}
		visited[p.edge] = struct{}{}

		outs := n.process(p.to, p.sig)
		n.deliver(&tr, Delivery{
			TraceID: tr.ID,
			Hop:     p.hop,
			From:    Component{net: n, h: p.from},
			To:      Component{net: n, h: p.to},
			Input:   p.sig,
			Outputs: outs,
		}, record)
		push(p.to, outs, p.hop+1)
	}

	if tr.Dropped > 0 {
		n.logger.Warn("hop budget exhausted",
			zap.String("trace", tr.ID),
			zap.String("origin", n.path(origin)),
			zap.Int("maxHops", n.maxHops),
			zap.Int("dropped", tr.Dropped))
	}
	return tr
}

func (n *Network) deliver(tr *Trace, d Delivery, record bool) {
	if record {
		tr.Deliveries = append(tr.Deliveries, d)
	}
	if ce := n.logger.Check(zap.DebugLevel, "signal delivered"); ce != nil {
		ce.Write(
			zap.String("trace", d.TraceID),
			zap.Int("hop", d.Hop),
			zap.String("to", d.To.Path()),
			zap.String("kind", d.Input.Kind),
			zap.Float64("strength", d.Input.Strength),
			zap.Int("outputs", len(d.Outputs)))
	}
	if n.publisher != nil {
		if err := n.publisher.Publish(context.Background(), d); err != nil {
			n.logger.Warn("publish delivery", zap.String("trace", d.TraceID), zap.Error(err))
		}
	}
}
