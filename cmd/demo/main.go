package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/anatomy"
	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
	"github.com/comalice/nervetree/internal/production"
	"github.com/comalice/nervetree/internal/stimulus"
)

// Stimulates the visual and motor pathways on a timer, persisting a snapshot
// and printing the DOT graph after each cycle.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	persister, err := production.NewJSONPersister(os.TempDir())
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.PublishedDelivery, 100)
	publisher := production.NewChannelPublisher(publishChan)

	n, err := anatomy.Build(
		core.WithLogger(logger),
		core.WithPersister(persister),
		core.WithPublisher(publisher),
		core.WithVisualizer(&production.DefaultVisualizer{}),
	)
	if err != nil {
		panic(err)
	}

	stimuli := []stimulus.Stimulus{
		{Target: anatomy.PrimaryVisualCortex, Signal: primitives.NewSignal("light", 0.9, "red ball")},
		{Target: anatomy.PrimaryMotorCortex, Signal: primitives.NewSignal("motor_command", 0.8, "reach")},
		{Target: anatomy.Amygdala, Signal: primitives.NewSignal("threat", 0.3, "distant noise")},
		{Target: anatomy.Amygdala, Signal: primitives.NewSignal("threat", 0.7, "loud noise")},
	}
	gate, err := stimulus.ParseGate("strength >= 0.5")
	if err != nil {
		panic(err)
	}
	driver := stimulus.NewDriver(n, stimulus.WithGate(gate), stimulus.WithLogger(logger))

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ctx := context.Background()
	cycles := 0
	for {
		select {
		case <-ticker.C:
			s := stimuli[cycles%len(stimuli)]
			r := driver.Handle(s)
			fmt.Printf("\n--- Cycle %d ---\n", cycles+1)
			switch {
			case r.Err != nil:
				fmt.Printf("Stimulus error: %v\n", r.Err)
			case r.Trace.ID == "":
				fmt.Printf("%s gated (%s)\n", s.Signal, gate)
			default:
				fmt.Printf("%s <- %s => %v\n", r.Trace.Origin.Name(), s.Signal, r.Trace.Direct)
			}

			drained := 0
			for drain := true; drain; {
				select {
				case <-publishChan:
					drained++
				default:
					drain = false
				}
			}
			fmt.Printf("Published %d deliveries\n", drained)

			snapshot, err := n.Persist(ctx)
			if err != nil {
				fmt.Printf("Persist error: %v\n", err)
			} else {
				fmt.Printf("Saved snapshot %s\n", snapshot.Version)
			}
			dot, err := n.Visualize()
			if err == nil {
				fmt.Println("DOT:\n" + dot)
			}

			cycles++
			if cycles >= 12 {
				st := driver.Stats()
				fmt.Printf("Demo complete after 12 cycles: %d sent, %d gated.\n", st.Sent, st.Gated)
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
