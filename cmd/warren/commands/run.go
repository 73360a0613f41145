package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/warren/internal/config"
	"github.com/dyluth/warren/internal/cycle"
	"github.com/dyluth/warren/internal/operation"
	"github.com/dyluth/warren/internal/printer"
	"github.com/dyluth/warren/internal/report"
	"github.com/dyluth/warren/internal/simworld"
	"github.com/spf13/cobra"
)

var runCycles int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a simulated colony for a number of cycles",
	Long: `Build a simulated colony from warren.yml and run its missions.

Facilities come from the config's facilities section. Without --redis-url
(or REDIS_URL) an in-process Redis is started and discarded when the run ends.

Examples:
  # Run 300 cycles against a throwaway store
  warren run --cycles 300

  # Persist rosters in a local Redis
  warren run --redis-url redis://localhost:6379 --cycles 50`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runCycles, "cycles", "n", 100, "Number of cycles to run")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if runCycles <= 0 {
		return printer.Error(
			"invalid cycle count",
			fmt.Sprintf("--cycles must be > 0, got %d", runCycles),
			nil,
		)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	colony := resolveColony(colonyName, cfg)

	url := resolveRedisURL(redisURL)
	if url == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start in-process Redis: %w", err)
		}
		defer mr.Close()
		url = "redis://" + mr.Addr()
		printer.Info("Using in-process Redis at %s\n", mr.Addr())
	}

	client, err := connect(ctx, url, colony)
	if err != nil {
		return err
	}
	defer client.Close()

	w, err := buildWorld(cfg)
	if err != nil {
		return err
	}

	ops, err := operation.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to build operations: %w", err)
	}

	engine := cycle.NewEngine(client, w, colony, ops, cycle.Options{
		InvalidateInterval: cfg.Cycle.InvalidateInterval,
		ErrorLogInterval:   cfg.Cycle.ErrorLogInterval,
	})

	printer.Step("Running %d cycles for colony '%s'\n", runCycles, colony)
	failures := 0
	for i := 0; i < runCycles; i++ {
		rep, err := engine.RunCycle(ctx)
		if err != nil {
			return printer.ErrorWithContext(
				"cycle failed",
				err.Error(),
				map[string]string{"Tick": fmt.Sprintf("%d", w.Tick)},
				nil,
			)
		}
		failures += rep.Failures
		w.Advance()
	}

	snap, err := client.Load(ctx, w.Tick)
	if err != nil {
		return fmt.Errorf("failed to read final state: %w", err)
	}

	printer.Println()
	report.FormatRoster(printer.Writer(), snap, colony)
	printer.Println()
	report.FormatLeases(printer.Writer(), snap, colony)
	printer.Println()

	if failures > 0 {
		printer.Warning("Ran %d cycles with %d mission failures\n", runCycles, failures)
	} else {
		printer.Success("Ran %d cycles\n", runCycles)
	}
	return nil
}

// buildWorld creates the simulated colony described by cfg.
func buildWorld(cfg *config.WarrenConfig) (*simworld.World, error) {
	if len(cfg.Facilities) == 0 {
		return nil, printer.Error(
			"no facilities defined",
			"A simulated run needs at least one facility to recruit from.",
			[]string{"Add a facilities section to warren.yml"},
		)
	}

	ids := make([]string, 0, len(cfg.Facilities))
	for id := range cfg.Facilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	w := simworld.New()
	for _, id := range ids {
		f := cfg.Facilities[id]
		w.AddFacility(id, f.Position, f.MaxEnergy, f.Level)
	}
	return w, nil
}
