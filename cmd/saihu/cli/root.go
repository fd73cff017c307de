// Package cli wires the saihu command's cobra commands, mirroring
// inference-sim-inference-sim/cmd/root.go's shape: a package-level
// rootCmd/runCmd pair, flag variables bound in init, and a package-level
// logrus configuration step before the work itself runs.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adfeel220/saihu/saihulog"
)

var (
	inputPath  string
	format     string
	method     string
	configPath string
	logLevel   string
	solverPath string
	cyclic     bool
)

var rootCmd = &cobra.Command{
	Use:   "saihu",
	Short: "Worst-case delay analyzer for time-sensitive networks",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze a network description with one delay-bound method",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := saihulog.SetLevel(logLevel); err != nil {
			return err
		}
		return runAnalysis(cmd.OutOrStdout())
	},
}

// Execute runs the root command, exiting the process with status 1 on
// error, matching inference-sim-inference-sim/cmd/root.go's Execute.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "network description file (required)")
	runCmd.Flags().StringVar(&format, "format", "", "input format: json, yaml, or wopanet (default: guessed from the file extension)")
	runCmd.Flags().StringVar(&method, "method", "tfa", "analysis method: tfa, tfa++, sfa, plp, elp, or xtfa")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional YAML clock/driver configuration file")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&solverPath, "solver", "lp_solve", "path to the lp_solve binary, for LP-based methods")
	runCmd.Flags().BoolVar(&cyclic, "cyclic", false, "use the cyclic fix-point driver instead of the feed-forward driver for method=xtfa")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
