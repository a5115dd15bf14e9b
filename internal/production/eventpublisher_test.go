// Tests for ChannelPublisher delivery and Network integration.
package production

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

func TestChannelPublisher_NetworkIntegration(t *testing.T) {
	ch := make(chan PublishedDelivery, 10)
	p := NewChannelPublisher(ch)
	n := sampleNetwork(t, core.WithPublisher(p))

	m1, err := n.Lookup("NS/Brain/M1")
	require.NoError(t, err)
	m1.Send(primitives.NewSignal("motor_command", 0.5, nil))
	require.NoError(t, p.Close())

	var got []PublishedDelivery
	for d := range ch {
		got = append(got, d)
	}
	require.Len(t, got, 2)

	assert.Equal(t, "", got[0].From)
	assert.Equal(t, "NS/Brain/M1", got[0].To)
	assert.Equal(t, 0, got[0].Hop)
	assert.Equal(t, "NS/Brain/M1", got[1].From)
	assert.Equal(t, "NS/Brain/Cerebellum", got[1].To)
	assert.Equal(t, 1, got[1].Hop)
	assert.Equal(t, got[0].TraceID, got[1].TraceID)
	assert.Equal(t, "motor_control_processed", got[1].Input.Kind)
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan PublishedDelivery, 1)
	p := NewChannelPublisher(ch)
	ch <- PublishedDelivery{} // fill buffer

	n := core.NewNetwork()
	c := n.NewComponent("c")
	err := p.Publish(context.Background(), core.Delivery{To: c})
	assert.NoError(t, err)
	assert.Equal(t, 1, p.Dropped())
}

func TestChannelPublisher_CanceledContext(t *testing.T) {
	ch := make(chan PublishedDelivery)
	p := NewChannelPublisher(ch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := core.NewNetwork()
	c := n.NewComponent("c")
	// unbuffered with no reader: either the canceled ctx wins or the
	// default branch drops; both leave the channel empty
	err := p.Publish(ctx, core.Delivery{To: c})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.NoError(t, p.Close())
}
