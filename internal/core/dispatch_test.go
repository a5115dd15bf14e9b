package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/nervetree/internal/primitives"
)

type recordingPublisher struct {
	deliveries []Delivery
	err        error
}

func (p *recordingPublisher) Publish(_ context.Context, d Delivery) error {
	p.deliveries = append(p.deliveries, d)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func names(ds []Delivery) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.To.Name()
	}
	return out
}

func TestSendEndToEnd(t *testing.T) {
	n := NewNetwork()
	root := n.NewComponent("root")
	a := n.NewComponent("A")
	b := n.NewCortical("B", "motor_control", primitives.AreaMotor, 6)
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(b))
	require.NoError(t, a.AddConnection(b))

	out := a.Send(primitives.NewSignal("cmd", 0.5, nil))

	require.Len(t, out, 1)
	assert.Equal(t, primitives.NewSignal("cmd", 0.5, nil), out[0])
	level, ok := b.ActivityLevel()
	require.True(t, ok)
	assert.Greater(t, level, 0.0)
	assert.InDelta(t, 0.05, level, 1e-9)
}

func TestSendReturnsOnlyDirectOutputs(t *testing.T) {
	n := NewNetwork()
	a := n.NewRegion("A", "relay")
	b := n.NewRegion("B", "relay")
	require.NoError(t, a.AddConnection(b))

	out := a.Send(primitives.NewSignal("x", 1, nil))
	require.Len(t, out, 1)
	assert.InDelta(t, 0.8, out[0].Strength, 1e-9)

	tr := n.SendTrace(a, primitives.NewSignal("x", 1, nil))
	assert.Equal(t, out, tr.Direct)
	assert.Len(t, tr.Deliveries, 2)
}

func TestSendDoesNotFollowTree(t *testing.T) {
	n := NewNetwork()
	parent := n.NewRegion("parent", "f")
	child := n.NewRegion("child", "f")
	require.NoError(t, parent.AddChild(child))

	child.Send(primitives.NewSignal("x", 1, nil))
	parent.Send(primitives.NewSignal("x", 1, nil))

	pl, _ := parent.ActivityLevel()
	cl, _ := child.ActivityLevel()
	assert.InDelta(t, 0.1, pl, 1e-9)
	assert.InDelta(t, 0.1, cl, 1e-9)
}

func TestSendTerminatesOnCycle(t *testing.T) {
	n := NewNetwork()
	a := n.NewRegion("A", "f")
	b := n.NewRegion("B", "f")
	require.NoError(t, a.AddConnection(b))
	require.NoError(t, b.AddConnection(a))

	tr := n.SendTrace(a, primitives.NewSignal("sig", 1, nil))

	assert.Equal(t, []string{"A", "B", "A"}, names(tr.Deliveries))
	assert.Equal(t, []int{0, 1, 2}, []int{tr.Deliveries[0].Hop, tr.Deliveries[1].Hop, tr.Deliveries[2].Hop})
	assert.Zero(t, tr.Dropped)
}

func TestSendTerminatesOnSelfConnection(t *testing.T) {
	n := NewNetwork(WithMaxHops(0))
	a := n.NewCortical("A", "motor_control", primitives.AreaMotor, 6)
	require.NoError(t, a.AddConnection(a))

	tr := n.SendTrace(a, primitives.NewSignal("sig", 0.5, nil))
	assert.Len(t, tr.Deliveries, 2)
	level, _ := a.ActivityLevel()
	assert.LessOrEqual(t, level, 1.0)
}

func TestSendDepthFirstOrder(t *testing.T) {
	n := NewNetwork()
	a := n.NewComponent("A")
	b := n.NewComponent("B")
	c := n.NewComponent("C")
	d := n.NewComponent("D")
	require.NoError(t, a.AddConnection(b))
	require.NoError(t, a.AddConnection(c))
	require.NoError(t, b.AddConnection(d))
	require.NoError(t, c.AddConnection(d))

	tr := n.SendTrace(a, primitives.NewSignal("x", 0.3, nil))

	// diamond: D is reached once per distinct edge
	want := []string{"A", "B", "D", "C", "D"}
	if diff := cmp.Diff(want, names(tr.Deliveries)); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, c, tr.Deliveries[4].From)
	assert.True(t, tr.Deliveries[0].From.IsZero())
	assert.Equal(t, a, tr.Origin)
	assert.NotEmpty(t, tr.ID)
}

func TestSendHopBudget(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := NewNetwork(WithMaxHops(2), WithLogger(zap.New(core)))

	chain := make([]Component, 5)
	for i := range chain {
		chain[i] = n.NewComponent(string(rune('A' + i)))
		if i > 0 {
			require.NoError(t, chain[i-1].AddConnection(chain[i]))
		}
	}

	tr := n.SendTrace(chain[0], primitives.NewSignal("x", 1, nil))
	assert.Equal(t, []string{"A", "B", "C"}, names(tr.Deliveries))
	assert.Equal(t, 1, tr.Dropped)

	entries := logs.FilterMessage("hop budget exhausted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["dropped"])
	assert.Equal(t, 2, n.MaxHops())
}

func TestSendPublishesDeliveries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pub := &recordingPublisher{err: errors.New("sink down")}
	n := NewNetwork(WithPublisher(pub), WithLogger(zap.New(core)))
	a := n.NewComponent("A")
	b := n.NewRegion("B", "f")
	require.NoError(t, a.AddConnection(b))

	tr := n.SendTrace(a, primitives.NewSignal("x", 1, nil))

	require.Len(t, pub.deliveries, 2)
	assert.Equal(t, tr.ID, pub.deliveries[1].TraceID)
	assert.Equal(t, b, pub.deliveries[1].To)
	assert.Equal(t, 2, logs.FilterMessage("signal delivered").Len())
	assert.Equal(t, 2, logs.FilterMessage("publish delivery").Len())
}

func TestSendTraceForeignComponent(t *testing.T) {
	n1, n2 := NewNetwork(), NewNetwork()
	a := n2.NewComponent("A")
	tr := n1.SendTrace(a, primitives.NewSignal("x", 1, nil))
	assert.Empty(t, tr.Deliveries)
	assert.Empty(t, tr.ID)
}

func TestActivityStaysBoundedUnderLoad(t *testing.T) {
	n := NewNetwork()
	regions := []Component{
		n.NewRegion("r1", "f"),
		n.NewCortical("m", "motor_control", primitives.AreaMotor, 6),
		n.NewCortical("s", "touch", primitives.AreaSensory, 6),
	}
	for _, a := range regions {
		for _, b := range regions {
			require.NoError(t, a.AddConnection(b))
		}
	}
	for i := 0; i < 50; i++ {
		regions[0].Send(primitives.NewSignal("x", 1, nil))
	}
	for _, r := range regions {
		level, _ := r.ActivityLevel()
		assert.GreaterOrEqual(t, level, 0.0)
		assert.LessOrEqual(t, level, 1.0)
	}

	n.ResetActivity()
	for _, r := range regions {
		level, _ := r.ActivityLevel()
		assert.Zero(t, level)
	}
}
