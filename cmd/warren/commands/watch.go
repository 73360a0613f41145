package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/warren/internal/printer"
	"github.com/dyluth/warren/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchOutputFormat string
	watchCount        int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream completed cycles as they are committed",
	Long: `Subscribe to the colony's cycle events and print one line per cycle.

Examples:
  warren watch --redis-url redis://localhost:6379
  warren watch --output=jsonl --count 10 | jq '.failures'`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Stop after this many cycles (0 streams until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format := watch.OutputFormat(watchOutputFormat)
	if format != watch.OutputFormatDefault && format != watch.OutputFormatJSONL {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	sub, err := client.SubscribeCycleEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch colony: %w", err)
	}
	defer sub.Close()

	if format == watch.OutputFormatDefault {
		printer.Step("Watching colony '%s' (Ctrl+C to stop)\n", client.Colony())
	}

	if _, err := watch.Stream(ctx, sub, printer.Writer(), format, watchCount); err != nil {
		return fmt.Errorf("failed to stream cycles: %w", err)
	}
	return nil
}
