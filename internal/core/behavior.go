package core

import "github.com/comalice/nervetree/internal/primitives"

// Processing constants.
const (
	// ActivityGain scales input strength into a region's activity increment.
	ActivityGain = 0.1
	// RegionAttenuation is the strength decay applied by every brain region.
	RegionAttenuation = 0.8
	// MotorGain is applied after region attenuation, for a net gain of 1.2.
	MotorGain = 1.5
	// SensoryFilter is applied after region attenuation by sensory areas.
	SensoryFilter = 0.9
)

// behavior is the closed set of processing variants. Each variant owns its
// own process rule; cortical reuses region by embedding.
type behavior interface {
	kind() primitives.ComponentKind
	process(n *node, sig primitives.Signal) []primitives.Signal
}

// passthrough is the plain component: identity, no side effects.
type passthrough struct{}

func (passthrough) kind() primitives.ComponentKind { return primitives.KindComponent }

func (passthrough) process(_ *node, sig primitives.Signal) []primitives.Signal {
	return []primitives.Signal{sig}
}

type region struct {
	function string
}

func (region) kind() primitives.ComponentKind { return primitives.KindRegion }

func (r region) process(n *node, sig primitives.Signal) []primitives.Signal {
	strength := primitives.Clamp(sig.Strength)
	n.activity = primitives.Clamp(n.activity + strength*ActivityGain)

	out := primitives.NewSignal(r.function+"_processed", strength*RegionAttenuation, sig.Payload)
	return []primitives.Signal{out}
}

type cortical struct {
	region
	area   primitives.AreaType
	layers int
}

func (cortical) kind() primitives.ComponentKind { return primitives.KindCortical }

func (c cortical) process(n *node, sig primitives.Signal) []primitives.Signal {
	outs := c.region.process(n, sig)
	for i, out := range outs {
		switch c.area {
		case primitives.AreaMotor:
			outs[i] = out.WithStrength(out.Strength * MotorGain)
		case primitives.AreaSensory:
			outs[i] = out.WithStrength(out.Strength * SensoryFilter).WithKind(c.function + "_encoded")
		default:
			// association and unknown area types: activity update only
			outs[i] = out.WithStrength(out.Strength)
		}
	}
	return outs
}
