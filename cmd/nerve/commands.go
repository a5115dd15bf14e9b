package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/primitives"
	"github.com/comalice/nervetree/internal/production"
)

func newTreeCmd(a *app) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "tree [component]",
		Short: "Print the component hierarchy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			var start core.Component
			if len(args) == 1 {
				start, err = component(n, args[0])
			} else {
				start, err = n.Root()
			}
			if err != nil {
				return err
			}
			return production.RenderTree(a.out, start, details)
		},
	}
	cmd.Flags().BoolVarP(&details, "details", "d", false, "show function, area type and activity")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find NAME",
		Short: "Print the path of the first component named NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			c, err := component(n, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, c.Path())
			if len(c.Connections()) > 0 {
				fmt.Fprintln(a.out, "connections:")
				for _, t := range c.Connections() {
					fmt.Fprintf(a.out, "  -> %s\n", t.Path())
				}
			}
			return nil
		},
	}
}

func newSendCmd(a *app) *cobra.Command {
	var (
		kind     string
		strength float64
		payload  string
		trace    bool
	)
	cmd := &cobra.Command{
		Use:   "send COMPONENT",
		Short: "Send a signal into a component and forward it along connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			c, err := component(n, args[0])
			if err != nil {
				return err
			}

			var p any
			if payload != "" {
				p = payload
			}
			sig := primitives.NewSignal(kind, strength, p)
			tr := n.SendTrace(c, sig)
			a.logger.Info("signal sent",
				zap.String("trace", tr.ID),
				zap.String("origin", c.Path()),
				zap.Int("deliveries", len(tr.Deliveries)),
				zap.Int("dropped", tr.Dropped))

			fmt.Fprintf(a.out, "%s <- %s\n", c.Path(), sig)
			for _, out := range tr.Direct {
				fmt.Fprintf(a.out, "  => %s\n", out)
			}
			if trace {
				for _, d := range tr.Deliveries[1:] {
					fmt.Fprintf(a.out, "hop %d %s -> %s %s => %s\n", d.Hop, d.From.Path(), d.To.Path(), d.Input, signals(d.Outputs))
				}
				if tr.Dropped > 0 {
					fmt.Fprintf(a.out, "dropped %d forwards past %d hops\n", tr.Dropped, n.MaxHops())
				}
			}

			if a.cfg.SnapshotDir != "" {
				if _, err := n.Persist(cmd.Context()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&kind, "kind", "k", "stimulus", "signal kind")
	flags.Float64VarP(&strength, "strength", "s", 0.5, "signal strength, clamped into [0, 1]")
	flags.StringVarP(&payload, "payload", "p", "", "signal payload")
	flags.BoolVarP(&trace, "trace", "t", false, "print every forwarded delivery")
	return cmd
}

func newDotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "Print the network as Graphviz DOT, coloured by activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			dot, err := n.Visualize()
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, dot)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the network description as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			cfg, err := n.Config()
			if err != nil {
				return err
			}
			cfg.Version = primitives.ComputeVersion(&cfg)
			data, err := primitives.EncodeYAML(cfg)
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}
}

func newSnapshotCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print non-zero activity levels, optionally saving a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.network(cmd.Context())
			if err != nil {
				return err
			}
			activity := n.Activity()
			paths := make([]string, 0, len(activity))
			for path, level := range activity {
				if level > 0 {
					paths = append(paths, path)
				}
			}
			sort.Strings(paths)
			for _, path := range paths {
				fmt.Fprintf(a.out, "%.3f %s\n", activity[path], path)
			}
			if !save {
				return nil
			}
			if a.cfg.SnapshotDir == "" {
				return fmt.Errorf("--save needs --snapshot-dir")
			}
			s, err := n.Persist(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "saved %s version %s\n", s.NetworkID, s.Version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write a snapshot to --snapshot-dir")
	return cmd
}

func signals(sigs []primitives.Signal) string {
	if len(sigs) == 1 {
		return sigs[0].String()
	}
	return fmt.Sprint(sigs)
}
