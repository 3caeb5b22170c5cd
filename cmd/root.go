// Package cmd contains all CLI commands for the abukit binary.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cmdconfig "github.com/klytics/abukit/cmd/config"
	"github.com/klytics/abukit/cmd/format"
	"github.com/klytics/abukit/cmd/version"
	"github.com/klytics/abukit/internal/logging"
	"github.com/klytics/abukit/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
	noPause    bool
	workDir    string

	logger = zap.NewNop()
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "abukit",
		Short: "Build marsh-bird abundance sheets from occupancy survey data",
		Long: `abukit reads the occupancy workbook in the working directory, counts each tracked
species per survey site and point for every record not yet proofed, and adds the counts to
the abundance workbook (or creates one). The abundance sheet is reformatted afterwards.

Run without arguments to start; you will be asked whenever a choice is needed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runPipeline,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.Flags().BoolVar(&noPause, "no-pause", false, "Exit without waiting for Enter")
	rootCmd.Flags().StringVar(&workDir, "dir", ".", "Directory holding the occupancy and abundance workbooks")

	// Register subcommands
	rootCmd.AddCommand(format.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// exitError carries an exit code for an outcome that has already been reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *exitError
		if errors.As(err, &reported) {
			os.Exit(reported.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(output.ExitUserError)
	}
}
