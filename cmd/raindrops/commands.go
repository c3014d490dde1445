package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/raindrops/internal/analysis"
	"github.com/san-kum/raindrops/internal/automation"
	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/export"
	"github.com/san-kum/raindrops/internal/sim"
	"github.com/san-kum/raindrops/internal/storage"
)

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = runName
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("broadphase") {
		cfg.Broadphase = broadphase
	}
	if flags.Changed("count") {
		cfg.Params.ParticleCount = count
	}
	if flags.Changed("trigger-every") {
		cfg.TriggerEvery = triggerEvery
	}
	if flags.Changed("gx") {
		cfg.Gravity.X = gravityX
	}
	if flags.Changed("gy") {
		cfg.Gravity.Y = gravityY
	}
	if cfg.Name == "" {
		cfg.Name = "run"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func metadataFor(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Name:       cfg.Name,
		Seed:       cfg.Seed,
		Frames:     cfg.Frames,
		FPS:        cfg.FPS,
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Input:      cfg.Input,
		Broadphase: cfg.Broadphase,
		Params:     cfg.Params,
	}
}

func saveRun(cfg *config.Config, result *sim.Result, elapsed time.Duration) error {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.FramesRun)
	fmt.Printf("transitions: %d\n", result.Transitions)
	printMetrics(result.Metrics)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(metadataFor(cfg), result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running simulation", "name", cfg.Name, "frames", cfg.Frames, "input", cfg.Input, "seed", cfg.Seed)
	start := time.Now()
	result, err := automation.Run(ctx, cfg)
	if err != nil {
		return err
	}
	return saveRun(cfg, result, time.Since(start))
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running scenario", "name", sc.Name, "steps", len(sc.Steps))
	start := time.Now()
	result, cfg, err := automation.RunScenario(ctx, sc)
	if err != nil {
		return err
	}
	return saveRun(cfg, result, time.Since(start))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINPUT\tFRAMES\tSEED\tPEAK\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%s\n",
			run.ID, run.Input, run.Frames, run.Seed, run.Metrics["peak_count"],
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func loadSeries(runID string) (*storage.RunMetadata, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	series, err := storage.Series(frames, column)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, seed %d)\n\n", meta.ID, meta.Input, meta.Seed)
	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(column),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadSeries(args[0])
	if err != nil {
		return err
	}

	fps := float64(meta.FPS)
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	s := analysis.Summarize(series)
	fmt.Printf("%s over %d frames\n", column, len(series))
	fmt.Printf("  min %.3f  max %.3f  mean %.3f  std %.3f\n", s.Min, s.Max, s.Mean, s.StdDev)

	padded := analysis.PadPow2(series)
	peak, ok := analysis.DominantFrequency(padded, fps)
	if !ok {
		fmt.Println("no periodic component")
		return nil
	}
	fmt.Printf("dominant frequency: %.4f Hz (period %.2fs, bin %d)\n", peak.Frequency, peak.Period, peak.Bin)

	ps := analysis.PowerSpectrum(padded)
	if len(ps) > 80 {
		ps = ps[:80]
	}
	fmt.Println(asciigraph.Plot(ps, asciigraph.Height(8), asciigraph.Caption("power spectrum")))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	frames, err := storage.New(dataDir).LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := automation.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if result.Final == nil {
		return fmt.Errorf("run produced no frame")
	}

	var hl *dynamo.EdgeHighlightEvent
	alpha := 0.0
	if n := len(result.Events); n > 0 {
		last := result.Events[n-1]
		elapsed := time.Duration(result.Final.Frame-last.Frame) * cfg.FrameDuration()
		hl, alpha = export.LastHighlight(result.Events, last.Start.Add(elapsed), cfg.Params.HighlightDuration)
	}

	svg := export.SnapshotToSVG(result.Final, hl, alpha, export.DefaultSVGOptions(cfg.Params.Radius))
	if outFile == "" {
		_, err := fmt.Fprintln(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	log.Info("svg written", "path", outFile, "drops", result.Final.Count())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tINPUT\tCOUNT\tBROADPHASE\tCOOLDOWN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%v\n", name, p.Input, p.Params.ParticleCount, p.Broadphase, p.Params.TriggerCooldown)
	}
	return w.Flush()
}

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("running ensemble", "trials", trials, "frames", cfg.Frames, "broadphase", cfg.Broadphase)
	start := time.Now()
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{Base: cfg, Trials: trials})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCLEARED\tEXIT FRAMES\tPEAK\tSEPARATION")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%v\t%.0f\t%.0f\t%.3f\n", r.Seed, r.Cleared, r.ExitFrames, r.PeakCount, r.Metrics["separation"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cleared, pending := automation.MonteCarloStats(results)
	totalFrames := trials * cfg.Frames
	fmt.Printf("\n%d cleared, %d pending\n", cleared, pending)
	fmt.Printf("%d frames in %v (%.0f frames/s)\n", totalFrames, elapsed, float64(totalFrames)/elapsed.Seconds())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(sweepMetric))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4f\n", r.ParamValue, r.Metrics[sweepMetric])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(results, sweepMetric, true); ok {
		fmt.Printf("\nbest %s: %g\n", sweepParam, best.ParamValue)
	}
	return nil
}
