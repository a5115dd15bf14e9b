// Package stimulus feeds signals into a Network from outside. Sources
// produce stimuli on channels; a Driver drains them on a single goroutine,
// which is the one goroutine allowed to touch the Network.
package stimulus

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/nervetree/internal/primitives"
)

// Stimulus is a signal addressed to a component by path or name.
type Stimulus struct {
	Target string            `yaml:"target"`
	Signal primitives.Signal `yaml:",inline"`
}

// ParseStimuli decodes a YAML (or JSON) list of stimuli:
//
//	- target: PrimaryMotorCortex
//	  kind: motor_command
//	  strength: 0.8
//
// Strengths are clamped into [0, 1].
func ParseStimuli(data []byte) ([]Stimulus, error) {
	var out []Stimulus
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse stimuli: %w", err)
	}
	for i := range out {
		if out[i].Target == "" {
			return nil, fmt.Errorf("parse stimuli: entry %d has no target", i)
		}
		out[i].Signal = out[i].Signal.WithStrength(out[i].Signal.Strength)
	}
	return out, nil
}

// SliceSource replays a fixed list of stimuli, then closes.
func SliceSource(stimuli []Stimulus) *ChannelSource {
	ch := make(chan Stimulus, len(stimuli))
	for _, s := range stimuli {
		ch <- s
	}
	close(ch)
	return NewChannelSource(ch)
}

// Source yields stimuli until its channel is closed.
type Source interface {
	Stimuli() <-chan Stimulus
}

// ChannelSource is a Source backed by a caller-owned channel.
type ChannelSource struct {
	ch chan Stimulus
}

// NewChannelSource wraps ch. The caller closes ch to end the stream.
func NewChannelSource(ch chan Stimulus) *ChannelSource {
	return &ChannelSource{ch: ch}
}

func (s *ChannelSource) Stimuli() <-chan Stimulus {
	return s.ch
}

// TimerSource emits the same stimulus every period until stopped.
type TimerSource struct {
	ch       chan Stimulus
	stimulus Stimulus
	ticker   *time.Ticker
	stop     chan struct{}
}

// NewTimerSource starts emitting s every d.
func NewTimerSource(s Stimulus, d time.Duration) *TimerSource {
	t := &TimerSource{
		ch:       make(chan Stimulus, 10),
		stimulus: s,
		ticker:   time.NewTicker(d),
		stop:     make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.stimulus:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

func (t *TimerSource) Stimuli() <-chan Stimulus {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TimerSource) Stop() {
	close(t.stop)
}
