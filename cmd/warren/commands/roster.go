package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/warren/internal/printer"
	"github.com/dyluth/warren/internal/report"
	"github.com/spf13/cobra"
)

var rosterOutputFormat string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show the persisted roster of every mission",
	Long: `Show every mission's roster as stored in Redis.

Output Formats:
  default - Table of mission, role, unit, partner and boosts
  jsonl   - One mission record per line

Examples:
  warren roster --redis-url redis://localhost:6379
  warren roster --output=jsonl | jq '.roster'`,
	RunE: runRoster,
}

var leasesCmd = &cobra.Command{
	Use:   "leases",
	Short: "Show the shared lease registry of every facility",
	RunE:  runLeases,
}

func init() {
	rosterCmd.Flags().StringVarP(&rosterOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(leasesCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := report.ParseOutputFormat(rosterOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", rosterOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	client, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	snap, err := client.Load(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load colony: %w", err)
	}

	if format == report.OutputFormatJSONL {
		return report.FormatJSONL(printer.Writer(), snap.Missions())
	}
	report.FormatRoster(printer.Writer(), snap, client.Colony())
	return nil
}

func runLeases(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	snap, err := client.Load(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load colony: %w", err)
	}

	report.FormatLeases(printer.Writer(), snap, client.Colony())
	return nil
}
