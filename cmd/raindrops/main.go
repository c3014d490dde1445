package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/gui"
	"github.com/san-kum/raindrops/internal/viz"
)

var (
	dataDir      string
	verbose      bool
	configFile   string
	preset       string
	runName      string
	frames       int
	seed         int64
	input        string
	broadphase   string
	count        int
	triggerEvery int
	gravityX     float64
	gravityY     float64
	withAudio    bool
	column       string
	outFile      string
	trials       int
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepMetric  string
	noSave       bool
)

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&runName, "name", "", "run name")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&input, "input", config.InputStatic, "input adapter (static, drift, pointer, manual, tilt)")
	cmd.Flags().StringVar(&broadphase, "broadphase", "brute", "relaxation broad-phase (brute, grid)")
	cmd.Flags().IntVar(&count, "count", 0, "particles per spawn (0 keeps the configured value)")
	cmd.Flags().IntVar(&triggerEvery, "trigger-every", config.DefaultTriggerEvery, "fire a trigger every n frames")
	cmd.Flags().Float64Var(&gravityX, "gx", 0, "gravity x")
	cmd.Flags().Float64Var(&gravityY, "gy", config.DefaultGravityY, "gravity y")
}

// main registers the commands and opens the raylib window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "raindrops",
		Short: "tilt-driven raindrop particle simulation",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, withAudio)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".raindrops", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSimFlags(rootCmd)
	rootCmd.Flags().BoolVar(&withAudio, "audio", false, "play rain ambience")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and store it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	addSimFlags(liveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset and tune it in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, withAudio)
		},
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "play rain ambience")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a frame series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "count", "series to plot (count, exiting, mean_speed, overlaps)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a frame series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "count", "series to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export frame stats to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "simulate and write the final frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	addSimFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			log.Info("config written", "path", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeds concurrently",
		Args:  cobra.NoArgs,
		RunE:  benchEnsemble,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&trials, "trials", 8, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and compare metrics",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "relax_iterations", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "separation", "metric to rank by (higher is better)")

	rootCmd.AddCommand(runCmd, scenarioCmd, liveCmd, tuiCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initCmd, benchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
