// Package format provides the command that restyles an abundance sheet on its own.
package format

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klytics/abukit/internal/abundance"
	"github.com/klytics/abukit/internal/config"
	"github.com/klytics/abukit/internal/formats/xlsx"
	"github.com/klytics/abukit/internal/output"
	"github.com/klytics/abukit/internal/prompt"
)

// NewCommand returns the format subcommand.
func NewCommand() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "format <file.xlsx>",
		Short: "Reformat an abundance sheet",
		Long: `Applies the abundance sheet styling: borders removed, Wind and Temp to one decimal,
dates as MM/DD/YYYY, text times converted to h:mm, and the "Proofed by" column highlighted.
Safe to run repeatedly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			path := args[0]

			if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				return fmt.Errorf("%s is not an .xlsx file", path)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			if sheet == "" {
				names, err := xlsx.SheetNames(path)
				if err != nil {
					return err
				}
				console := prompt.NewReaderConsole(cmd.InOrStdin(), cmd.OutOrStdout())
				if sheet, err = prompt.Select(console, "More than 1 sheet found in excel file", names); err != nil {
					return err
				}
			}

			layout := abundance.Layout(cfg.Species, cfg.Format.HighlightColor)
			report, err := xlsx.ReformatFile(path, sheet, layout)
			if err != nil {
				return fmt.Errorf("could not reformat %s: %w", path, err)
			}

			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "format", report)
			}

			out := output.NewConsole(cmd.OutOrStdout())
			out.Success("Reformatted %s [%s]: %d cells, %d times converted", path, sheet, report.Cells, report.TimesConverted)
			if len(report.Unparsed) > 0 {
				out.Warn("Left as text (not a clock time): %s", strings.Join(report.Unparsed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to reformat (asked when the workbook has several)")

	return cmd
}
