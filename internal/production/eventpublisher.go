package production

import (
	"context"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
)

// PublishedDelivery is a core.Delivery flattened to paths so it can leave
// the goroutine that owns the Network.
type PublishedDelivery struct {
	TraceID string              `json:"trace"`
	Hop     int                 `json:"hop"`
	From    string              `json:"from,omitempty"` // empty for the origin
	To      string              `json:"to"`
	Input   primitives.Signal   `json:"input"`
	Outputs []primitives.Signal `json:"outputs"`
}

// NewPublishedDelivery converts a delivery, resolving component paths.
func NewPublishedDelivery(d core.Delivery) PublishedDelivery {
	pd := PublishedDelivery{
		TraceID: d.TraceID,
		Hop:     d.Hop,
		To:      d.To.Path(),
		Input:   d.Input,
		Outputs: append([]primitives.Signal(nil), d.Outputs...),
	}
	if !d.From.IsZero() {
		pd.From = d.From.Path()
	}
	return pd
}

// ChannelPublisher forwards deliveries to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- PublishedDelivery
	dropped int
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedDelivery) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, d core.Delivery) error {
	select {
	case p.ch <- NewPublishedDelivery(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil
	}
}

// Dropped returns how many deliveries were discarded on a full channel.
func (p *ChannelPublisher) Dropped() int { return p.dropped }

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
