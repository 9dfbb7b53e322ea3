package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/armtraj/internal/angle"
	"github.com/san-kum/armtraj/internal/config"
	"github.com/san-kum/armtraj/internal/experiment"
	"github.com/san-kum/armtraj/internal/logging"
	"github.com/san-kum/armtraj/internal/sim"
	"github.com/san-kum/armtraj/internal/storage"
	"github.com/san-kum/armtraj/internal/trajectory"
	"github.com/san-kum/armtraj/internal/viz"
)

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

func jointNames(cfg *config.Config) []string {
	names := make([]string, len(cfg.Joints))
	for i, j := range cfg.Joints {
		names[i] = j.Name
	}
	return names
}

func limitsDeg(cfg *config.Config) []float64 {
	limits := make([]float64, len(cfg.Joints))
	for i, j := range cfg.Joints {
		limits[i] = j.LimitDeg
	}
	return limits
}

func sortedMetrics(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), preset, configFile)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%s)...\n", cfg.Name, cfg.Mode)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Name:     cfg.Name,
		Mode:     cfg.Mode,
		Basis:    cfg.Basis,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Joints:   jointNames(cfg),
	}, result)
	if err != nil {
		return err
	}
	logger.Infow("run saved", "id", runID, "dir", dataDir)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.Ticks)
	if result.Completed {
		fmt.Printf("trajectory complete at tick %d (t=%.4f)\n", result.Ticks-1, result.Times[len(result.Times)-1])
	} else {
		fmt.Println("stopped before completion")
	}
	fmt.Println("\nmetrics:")
	for _, name := range sortedMetrics(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func sampleTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), preset, configFile)
	if err != nil {
		return err
	}
	if cfg.Mode != config.ModeTrajectory {
		return fmt.Errorf("sample needs trajectory mode, got %s", cfg.Mode)
	}

	set, err := cfg.WaypointSet()
	if err != nil {
		return err
	}
	b, err := cfg.ParsedBasis()
	if err != nil {
		return err
	}
	ip := trajectory.NewInterpolator(set, b)
	if err := ip.Build(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "TIME")
	for _, name := range jointNames(cfg) {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for _, arg := range args {
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("time %q: %w", arg, err)
		}
		q, err := ip.Evaluate(t)
		if err != nil {
			return err
		}
		if degrees {
			q = angle.Rad2DegVector(q)
		}
		fmt.Fprintf(w, "%g", t)
		for _, v := range q {
			fmt.Fprintf(w, "\t%.6f", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
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

	fmt.Println(titleStyle.Render("runs"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tBASIS\tTIME\tDT\tTICKS\tDONE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4fs\t%d\t%v\n",
			run.ID,
			run.Mode,
			run.Basis,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Ticks,
			run.Completed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	targets, _, err := st.LoadTargets(runID)
	if err != nil {
		return err
	}

	if len(targets) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(targets))

	dim := len(targets[0])
	joints := make([]int, 0, dim)
	switch {
	case joint >= dim:
		return fmt.Errorf("joint %d out of range (run has %d joints)", joint, dim)
	case joint >= 0:
		joints = append(joints, joint)
	default:
		for j := 0; j < dim; j++ {
			joints = append(joints, j)
		}
	}

	header := storage.Header(meta.Joints, dim)
	for _, j := range joints {
		data := make([]float64, len(targets))
		for i, q := range targets {
			data[i] = q[j]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (rad) vs tick", header[j+1])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	targets, times, err := st.LoadTargets(runID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteCSV(os.Stdout, meta.Joints, times, targets)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	targets, times, err := st.LoadTargets(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(*meta, times, targets)
}

func buildLive(cfg *config.Config) (viz.Model, error) {
	ctrl, err := experiment.NewRegistry().GetController(cfg, cfg.Seed, logger)
	if err != nil {
		return viz.Model{}, err
	}
	return viz.NewModel(ctrl, viz.Options{
		Name:      cfg.Name,
		Joints:    jointNames(cfg),
		LimitsDeg: limitsDeg(cfg),
		Dt:        cfg.Dt,
	}), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	// The view owns the terminal; keep logs out of it.
	if !cmd.Flags().Changed("log-level") {
		logger = logging.NewNop()
	}

	if preset == "" && configFile == "" {
		return viz.RunPicker(config.ListPresets(), config.Descriptions, func(name string) (viz.Model, error) {
			cfg, err := resolveConfig(cmd.Flags(), name, "")
			if err != nil {
				return viz.Model{}, err
			}
			return buildLive(cfg)
		})
	}

	cfg, err := resolveConfig(cmd.Flags(), preset, configFile)
	if err != nil {
		return err
	}
	m, err := buildLive(cfg)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("presets"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "  %s\t%s\t%s\n", name, cfg.Mode, config.Descriptions[name])
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags(), preset, configFile)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	reg := experiment.NewRegistry()
	ens := sim.NewEnsemble(
		reg.Factory(cfg, logger),
		func() []sim.Metric { return reg.DefaultMetrics(cfg) },
		numRuns,
		cfg.Seed,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infow("ensemble started", "mode", cfg.Mode, "runs", numRuns, "seed", cfg.Seed)
	results, err := ens.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	names := sortedMetrics(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tTICKS\tDONE")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%v", cfg.Seed+int64(i), r.Ticks, r.Completed)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
