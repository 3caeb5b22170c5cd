package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klytics/abukit/internal/config"
	"github.com/klytics/abukit/internal/output"
	"github.com/klytics/abukit/internal/pipeline"
	"github.com/klytics/abukit/internal/prompt"
	"github.com/klytics/abukit/internal/survey"
)

func runPipeline(cmd *cobra.Command, args []string) error {
	status, results := streams(cmd)
	out := output.NewConsole(status)

	console, err := prompt.NewConsole(status)
	if err != nil {
		logger.Warn("line editing unavailable", zap.Error(err))
		console = prompt.NewReaderConsole(os.Stdin, status)
	}
	defer console.Close()

	return run(cmd.Context(), out, console, results)
}

// streams returns where status lines and prompts go and where the result goes. With --json
// stdout carries nothing but the JSON document.
func streams(cmd *cobra.Command) (status, results io.Writer) {
	if jsonOutput {
		return cmd.ErrOrStderr(), cmd.OutOrStdout()
	}
	return cmd.OutOrStdout(), cmd.OutOrStdout()
}

func run(ctx context.Context, out *output.Console, console prompt.Prompter, results io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		err = fmt.Errorf("could not load configuration: %w", err)
		out.Error("%s", err)
		return finish(console, results, nil, err, output.ExitUserError, "\nPress enter to close.")
	}
	if !cfg.Output.Color {
		color.NoColor = true
	}
	if issues := config.Validate(cfg); config.HasErrors(issues) {
		for _, issue := range issues {
			out.Error("%s: %s", issue.Key, issue.Message)
		}
		err := fmt.Errorf("invalid configuration — fix %s", config.ConfigPath())
		out.Error("%s", err)
		return finish(console, results, nil, err, output.ExitUserError, "\nPress enter to close.")
	}

	runner := &pipeline.Runner{
		Dir:      workDir,
		Settings: pipeline.SettingsFrom(cfg),
		Prompt:   console,
		Out:      out,
		Log:      logger,
	}
	summary, runErr := runner.Run(ctx)

	code, closing := report(out, runErr)
	if runErr != nil {
		logger.Debug("run ended", zap.Error(runErr), zap.Int("code", code))
	}
	return finish(console, results, summary, runErr, code, closing)
}

// finish writes the JSON result when asked for, holds the window open and turns the outcome
// into an exit code.
func finish(console prompt.Prompter, results io.Writer, summary *pipeline.Summary, err error, code int, closing string) error {
	if jsonOutput {
		if err != nil {
			_ = output.PrintJSONError(results, "run", err, code)
		} else {
			_ = output.PrintJSON(results, "run", summary)
		}
	}
	if !noPause {
		console.Pause(closing)
	}

	if code != output.ExitOK {
		return &exitError{code: code, err: err}
	}
	return nil
}

// report tells the operator how the run ended and returns the exit code and the closing
// prompt.
func report(out *output.Console, err error) (int, string) {
	var schemaErr *survey.SchemaError
	switch {
	case err == nil:
		return output.ExitOK, "Finished. Press enter to close."
	case errors.Is(err, survey.ErrUserCancelled):
		out.Warn("\nUser cancelled program.")
		return output.ExitOK, "Hit enter to close."
	case errors.Is(err, survey.ErrEmptyResult):
		out.Warn("No new data found in occupancy data file. " +
			"All the occupancy data has already been proofed or the file is empty.")
		return output.ExitOK, "\nPress enter to close program."
	case errors.Is(err, survey.ErrNotFound):
		out.Error("%s", err)
		return output.ExitUserError, "\nPress enter to close."
	case errors.As(err, &schemaErr):
		out.Error("%s", err)
		out.Info("Required columns: %s", strings.Join(survey.RequiredColumns(), ", "))
		return output.ExitSystemError, "\nAn error occurred (see above). Press enter to close window."
	}

	out.Error("An error occurred: %s", err)
	for _, line := range trace(err) {
		out.Info("  %s", line)
	}
	return output.ExitSystemError, "\nAn error occurred (see above). Press enter to close window."
}

// trace lists every layer of a wrapped error with its type.
func trace(err error) []string {
	var lines []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		lines = append(lines, fmt.Sprintf("%T: %v", e, e))
	}
	return lines
}
