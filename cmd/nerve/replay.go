package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/nervetree/internal/stimulus"
)

func newReplayCmd(a *app) *cobra.Command {
	var gates []string
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Send every stimulus listed in a YAML file, in order",
		Long: `replay reads a YAML list of stimuli and sends each one:

  - target: PrimaryMotorCortex
    kind: motor_command
    strength: 0.8
    payload: move_right_hand

Targets are paths or component names. Each --gate ("strength >= 0.5",
"kind == threat", "target != Amygdala") must pass for a stimulus to be sent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stimuli, err := stimulus.ParseStimuli(data)
			if err != nil {
				return err
			}

			opts := []stimulus.DriverOption{stimulus.WithLogger(a.logger)}
			for _, expr := range gates {
				g, err := stimulus.ParseGate(expr)
				if err != nil {
					return err
				}
				opts = append(opts, stimulus.WithGate(g))
			}

			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			results := make(chan stimulus.Result, len(stimuli))
			d := stimulus.NewDriver(n, append(opts, stimulus.WithResults(results))...)
			if err := d.Run(cmd.Context(), stimulus.SliceSource(stimuli)); err != nil {
				return err
			}
			close(results)

			for r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(a.out, "skip %s: %v\n", r.Stimulus.Target, r.Err)
				case r.Trace.ID == "":
					fmt.Fprintf(a.out, "gated %s %s\n", r.Stimulus.Target, r.Stimulus.Signal)
				default:
					fmt.Fprintf(a.out, "sent %s %s => %s (%d deliveries)\n",
						r.Trace.Origin.Path(), r.Stimulus.Signal, signals(r.Trace.Direct), len(r.Trace.Deliveries))
				}
			}
			st := d.Stats()
			fmt.Fprintf(a.out, "%d sent, %d gated, %d failed\n", st.Sent, st.Gated, st.Failed)

			if a.cfg.SnapshotDir != "" {
				if _, err := n.Persist(cmd.Context()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&gates, "gate", "g", nil, "gate expression a stimulus must satisfy (repeatable)")
	return cmd
}
