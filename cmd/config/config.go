// Package config provides CLI commands for configuration management.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/abukit/internal/config"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage abukit configuration",
		Long:  "View, create, and validate the search keywords, species list, and formatting settings.",
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPathCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func newInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			text, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			issues := config.Validate(cfg)

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(issues)
			}

			if len(issues) == 0 {
				color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Configuration is valid")
				return nil
			}

			for _, issue := range issues {
				switch issue.Severity {
				case "error":
					color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "  %s\n", issue.Message)
				case "warning":
					color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "  %s\n", issue.Message)
				}
				if issue.Fix != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   Fix: %s\n", issue.Fix)
				}
			}
			if config.HasErrors(issues) {
				return fmt.Errorf("configuration has errors")
			}
			return nil
		},
	}
}
