// Command earthctl loads an earth file, builds the described map and
// terrain engine, and reports what the engine core does in response to
// map mutations. It exists to exercise the module end to end and as a
// reference for wiring the pieces together.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/compositor"
	"github.com/RealRui/osgearth/config"
	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/scene"
	"github.com/RealRui/osgearth/terrain"
	_ "github.com/RealRui/osgearth/terrain/gridengine"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "earthctl:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "earthctl",
		Short: "earthctl inspects and exercises osgearth terrain engines",
		PersistentPreRun: func(*cobra.Command, []string) {
			osgearth.SetLogger(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level: parseLevel(logLevel),
			})))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")

	cmd.AddCommand(newInfoCommand(), newRunCommand())
	return cmd
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <earth-file>",
		Short: "Describe an earth file and the available engines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			m, err := cfg.BuildMap()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "map %q (%s)\n", m.Name(), m.SRS().Name())
			for i, l := range m.Layers() {
				fmt.Fprintf(out, "  layer %d: %-12s %s\n", i, l.Kind(), l.Name())
			}
			fmt.Fprintf(out, "engines available: %s\n",
				strings.Join(terrain.AvailableEngines(), ", "))
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <earth-file>",
		Short: "Attach an engine and walk it through a mutation cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			m, err := cfg.BuildMap()
			if err != nil {
				return err
			}
			eng, err := cfg.CreateEngine(m)
			if err != nil {
				return err
			}
			defer eng.Close()
			comp := compositor.New(m)
			defer comp.Close()
			eng.SetCompositor(comp)

			out := cmd.OutOrStdout()
			node := scene.NewTerrainNode(eng)
			frame := uint64(0)
			cycle := func(label string) {
				frame++
				tv := &scene.Traversal{Frame: frame}
				node.Traverse(tv)
				fmt.Fprintf(out, "%-24s dirty=%-3d redraw=%v\n",
					label, tv.DirtyCount, tv.RedrawRequired)
			}

			cycle("after attach")

			for _, l := range m.ImageLayers() {
				l.SetOpacity(l.Opacity() * 0.9)
			}
			cycle("after opacity change")

			extra := mapmodel.NewImageLayer("scratch")
			m.AddLayer(extra)
			m.RemoveLayer(extra)
			cycle("after add/remove layer")

			eng.InvalidateRegion(m.SRS().WorldExtent())
			cycle("after invalidation")

			cycle("quiet cycle")
			return nil
		},
	}
}
