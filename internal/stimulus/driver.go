package stimulus

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

// Result reports what a Driver did with one stimulus.
type Result struct {
	Stimulus Stimulus
	// Trace is empty when the stimulus was gated or its target unknown.
	Trace core.Trace
	Err   error
}

// Driver serializes stimuli from a Source into a Network.
type Driver struct {
	net     *core.Network
	gates   []Gate
	logger  *zap.Logger
	results chan<- Result
	stats   Stats
}

// Stats counts stimuli by outcome.
type Stats struct {
	Sent, Gated, Failed int
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithGate adds a gate; a stimulus must pass every gate.
func WithGate(g Gate) DriverOption {
	return func(d *Driver) { d.gates = append(d.gates, g) }
}

// WithLogger configures structured logging. A nil logger is ignored.
func WithLogger(l *zap.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithResults reports every stimulus outcome on ch. Sends block, so the
// reader must keep up or the Driver stalls.
func WithResults(ch chan<- Result) DriverOption {
	return func(d *Driver) { d.results = ch }
}

// NewDriver returns a Driver that owns n while running.
func NewDriver(n *core.Network, opts ...DriverOption) *Driver {
	d := &Driver{net: n, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drains src until its channel closes or ctx is done. The caller must
// not use the Network from other goroutines until Run returns.
func (d *Driver) Run(ctx context.Context, src Source) error {
	in := src.Stimuli()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-in:
			if !ok {
				return nil
			}
			r := d.Handle(s)
			if d.results != nil {
				select {
				case d.results <- r:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// Handle applies the gates to s and sends it if they all pass.
func (d *Driver) Handle(s Stimulus) Result {
	for _, g := range d.gates {
		if !g.Allow(s) {
			d.stats.Gated++
			d.logger.Debug("stimulus gated", zap.String("target", s.Target), zap.Stringer("signal", s.Signal))
			return Result{Stimulus: s}
		}
	}

	c, err := resolve(d.net, s.Target)
	if err != nil {
		d.stats.Failed++
		d.logger.Warn("stimulus target", zap.String("target", s.Target), zap.Error(err))
		return Result{Stimulus: s, Err: err}
	}

	start := time.Now()
	tr := d.net.SendTrace(c, s.Signal)
	d.stats.Sent++
	d.logger.Debug("stimulus sent",
		zap.String("trace", tr.ID),
		zap.String("target", c.Path()),
		zap.Stringer("signal", s.Signal),
		zap.Int("deliveries", len(tr.Deliveries)),
		zap.Duration("took", time.Since(start)))
	return Result{Stimulus: s, Trace: tr}
}

// Stats returns the outcome counts so far.
func (d *Driver) Stats() Stats { return d.stats }

func resolve(n *core.Network, target string) (core.Component, error) {
	if c, err := n.Lookup(target); err == nil {
		return c, nil
	}
	if c, ok := n.Find(target); ok {
		return c, nil
	}
	return core.Component{}, fmt.Errorf("stimulus target %q: %w", target, core.ErrNotFound)
}

// Inject is a convenience for a one-off stimulus outside a Run loop.
func Inject(n *core.Network, target string, sig primitives.Signal) (core.Trace, error) {
	c, err := resolve(n, target)
	if err != nil {
		return core.Trace{}, err
	}
	return n.SendTrace(c, sig), nil
}
