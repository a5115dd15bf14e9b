package stimulus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

func TestDriver_Run(t *testing.T) {
	n := reflexNetwork(t)
	gate, err := ParseGate("strength >= 0.3")
	require.NoError(t, err)

	obsCore, logs := observer.New(zapcore.WarnLevel)
	results := make(chan Result, 3)
	d := NewDriver(n, WithGate(gate), WithLogger(zap.New(obsCore)), WithResults(results))

	ch := make(chan Stimulus, 3)
	ch <- Stimulus{Target: "Sensor", Signal: primitives.NewSignal("tap", 1, nil)}
	ch <- Stimulus{Target: "Sensor", Signal: primitives.NewSignal("tap", 0.1, nil)}
	ch <- Stimulus{Target: "Nowhere", Signal: primitives.NewSignal("tap", 1, nil)}
	close(ch)

	require.NoError(t, d.Run(context.Background(), NewChannelSource(ch)))
	assert.Equal(t, Stats{Sent: 1, Gated: 1, Failed: 1}, d.Stats())

	sent := <-results
	require.NoError(t, sent.Err)
	require.Len(t, sent.Trace.Deliveries, 2)
	assert.Equal(t, "Arc/Motor", sent.Trace.Deliveries[1].To.Path())

	gated := <-results
	assert.NoError(t, gated.Err)
	assert.Empty(t, gated.Trace.ID)

	failed := <-results
	assert.ErrorIs(t, failed.Err, core.ErrNotFound)

	assert.Equal(t, 1, logs.FilterMessage("stimulus target").Len())

	motor, err := n.Lookup("Arc/Motor")
	require.NoError(t, err)
	level, _ := motor.ActivityLevel()
	assert.InDelta(t, 0.072, level, 1e-9)
}

func TestDriver_RunCanceled(t *testing.T) {
	d := NewDriver(reflexNetwork(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, NewChannelSource(make(chan Stimulus)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInject(t *testing.T) {
	n := reflexNetwork(t)

	tr, err := Inject(n, "Arc/Sensor", primitives.NewSignal("tap", 1, nil))
	require.NoError(t, err)
	require.Len(t, tr.Direct, 1)
	assert.Equal(t, "touch_encoded", tr.Direct[0].Kind)

	_, err = Inject(n, "Missing", primitives.NewSignal("tap", 1, nil))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

