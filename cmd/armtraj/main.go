package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/armtraj/internal/logging"
)

var (
	dataDir    string
	logLevel   string
	mode       string
	basis      string
	dt         float64
	duration   float64
	maxTicks   int
	seed       int64
	configFile string
	preset     string
	joint      int
	degrees    bool
	numRuns    int

	logger = logging.NewNop()
)

// main registers the armtraj commands and executes the root command. It
// exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "armtraj",
		Short:         "joint trajectory generator for multi-joint arms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New("armtraj", logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armtraj", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a controller and save its targets",
		Args:  cobra.NoArgs,
		RunE:  runTrajectory,
	}
	addConfigFlags(runCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample [time...]",
		Short: "evaluate the configured trajectory at the given times",
		Args:  cobra.MinimumNArgs(1),
		RunE:  sampleTrajectory,
	}
	addConfigFlags(sampleCmd)
	sampleCmd.Flags().BoolVar(&degrees, "degrees", false, "print joint values in degrees")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot joint targets of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&joint, "joint", -1, "joint index to plot (-1 for all)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run targets to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step a controller in real time with a terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file to start from",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run several seeds of a controller in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of seeds")

	rootCmd.AddCommand(runCmd, sampleCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd, initCmd, ensembleCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", "trajectory", "controller mode (trajectory, pattern, random)")
	cmd.Flags().StringVar(&basis, "basis", "linear", "interpolation basis (linear, monotone, akima, natural)")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "tick step in seconds")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (0 runs until the controller completes)")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 100000, "tick limit")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}
