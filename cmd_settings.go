package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/config"
)

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the company settings kept by the backend",
	RunE:  settingsRun,
}

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Local configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the effective configuration",
	Long:        `Show the configuration after flags, environment and the config file are merged. Secrets are masked.`,
	Annotations: map[string]string{noClientAnnotation: "true"},
	RunE:        configShowRun,
}

func init() {
	configCmd.AddCommand(configShowCmd)

	addOutputFlag(settingsCmd)
	addOutputFlag(configShowCmd)
}

func settingsRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	s, err := client.Settings(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch settings: %w", err)
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), s)
	case tableOutputFormat:
		t := createStyledTable("SETTING", "VALUE")
		t.Row("Company", placeholder(s.CompanyName))
		t.Row("Address", placeholder(s.Address))
		t.Row("Phone", placeholder(s.Phone))
		t.Row("Email", placeholder(s.Email))
		t.Row("GSTIN", placeholder(s.GSTIN))
		t.Row("Financial year start", placeholder(s.FinancialYearStart))
		t.Row("Currency", placeholder(s.Currency))
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}

func configShowRun(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	rows := config.Rows(currentConfig())

	switch outputFormat {
	case jsonOutputFormat:
		values := make(map[string]string, len(rows))
		for _, r := range rows {
			values[r[0]] = r[1]
		}
		return outputJSON(cmd.OutOrStdout(), values)
	case tableOutputFormat:
		t := createStyledTable("SETTING", "VALUE", "DESCRIPTION")
		for _, r := range rows {
			t.Row(r...)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	default:
		return errors.New("unsupported output format")
	}
}
