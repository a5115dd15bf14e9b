// Command nerve inspects the nervous-system network and sends signals
// through it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/nervetree/internal/anatomy"
	"github.com/comalice/nervetree/internal/config"
	"github.com/comalice/nervetree/internal/core"
	"github.com/comalice/nervetree/internal/logging"
	"github.com/comalice/nervetree/internal/production"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries flag values and the state built from them for one invocation.
type app struct {
	cfg    config.Config
	out    io.Writer
	logger *zap.Logger
}

func newRootCmd(cfg config.Config, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, out: out, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "nerve",
		Short: "Explore and stimulate a nervous-system component tree",
		Long: `nerve loads a nervous-system network (the built-in anatomy unless
--network names a YAML or JSON description) and lets you print it, look up
components, send signals along its connections and export it.

With --snapshot-dir set, activity levels are restored before each command
and saved after every send, so stimulation accumulates across runs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(a.cfg.LogLevel, a.cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	flags.IntVar(&a.cfg.MaxHops, "max-hops", cfg.MaxHops, "forwarding depth bound per send, 0 for none")
	flags.StringVar(&a.cfg.NetworkFile, "network", cfg.NetworkFile, "network description file (default: built-in anatomy)")
	flags.StringVar(&a.cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "directory for activity snapshots")
	flags.StringVar(&a.cfg.SnapshotFormat, "snapshot-format", cfg.SnapshotFormat, "snapshot encoding (yaml or json)")

	root.AddCommand(
		newTreeCmd(a),
		newFindCmd(a),
		newSendCmd(a),
		newDotCmd(a),
		newExportCmd(a),
		newSnapshotCmd(a),
		newReplayCmd(a),
	)
	return root
}

// network builds the configured network and restores saved activity.
func (a *app) network(ctx context.Context, opts ...core.Option) (*core.Network, error) {
	opts = append([]core.Option{
		core.WithLogger(a.logger),
		core.WithMaxHops(a.cfg.MaxHops),
		core.WithVisualizer(&production.DefaultVisualizer{}),
	}, opts...)

	if a.cfg.SnapshotDir != "" {
		p, err := production.NewPersister(a.cfg.SnapshotFormat, a.cfg.SnapshotDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, core.WithPersister(p))
		n, err := anatomy.Load(a.cfg.NetworkFile, opts...)
		if err != nil {
			return nil, err
		}
		snapshot, err := p.Load(ctx, n.ID())
		switch {
		case errors.Is(err, os.ErrNotExist):
			a.logger.Debug("no snapshot", zap.String("network", n.ID()))
		case err != nil:
			return nil, err
		default:
			if err := n.Restore(snapshot); err != nil {
				return nil, err
			}
		}
		return n, nil
	}
	return anatomy.Load(a.cfg.NetworkFile, opts...)
}

// component resolves ref as a path, falling back to the first component
// with that name.
func component(n *core.Network, ref string) (core.Component, error) {
	if c, err := n.Lookup(ref); err == nil {
		return c, nil
	}
	if c, ok := n.Find(ref); ok {
		return c, nil
	}
	return core.Component{}, fmt.Errorf("component %q: %w", ref, core.ErrNotFound)
}
