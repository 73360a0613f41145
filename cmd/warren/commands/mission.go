package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/warren/internal/mission"
	"github.com/dyluth/warren/internal/printer"
	"github.com/dyluth/warren/pkg/ledger"
	"github.com/spf13/cobra"
)

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Adjust a persisted mission record",
}

var setBoostCmd = &cobra.Command{
	Use:   "set-boost <operation> <mission> <on|off>",
	Short: "Enable or disable boosting new recruits",
	Long: `Toggle boost seeding for a mission. Units recruited after the change
carry the mission's boost list.

Examples:
  warren mission set-boost alpha mining on
  warren mission set-boost alpha mining off`,
	Args: cobra.ExactArgs(3),
	RunE: runSetBoost,
}

var setMaxCmd = &cobra.Command{
	Use:   "set-max <operation> <mission> <count>",
	Short: "Override a mission's desired unit count",
	Long: `Store an operator override for the number of units a mission keeps.
The override takes effect from the next cycle.

Examples:
  warren mission set-max alpha mining 3`,
	Args: cobra.ExactArgs(3),
	RunE: runSetMax,
}

func init() {
	missionCmd.AddCommand(setBoostCmd)
	missionCmd.AddCommand(setMaxCmd)
	rootCmd.AddCommand(missionCmd)
}

func runSetBoost(cmd *cobra.Command, args []string) error {
	var enabled bool
	switch args[2] {
	case "on", "true":
		enabled = true
	case "off", "false":
	default:
		return printer.Error(
			"invalid boost setting",
			fmt.Sprintf("Unknown value: %s", args[2]),
			[]string{"Use on or off"},
		)
	}
	return updateMission(args[0], args[1], func(rec *ledger.MissionRecord) string {
		return mission.SetBoost(rec, enabled)
	})
}

func runSetMax(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[2])
	if err != nil || n < 0 {
		return printer.Error(
			"invalid count",
			fmt.Sprintf("Count must be a non-negative integer, got %s", args[2]),
			nil,
		)
	}
	return updateMission(args[0], args[1], func(rec *ledger.MissionRecord) string {
		return mission.SetMax(rec, n)
	})
}

// updateMission applies change to a mission that has already run at least once.
func updateMission(operation, name string, change func(*ledger.MissionRecord) string) error {
	ctx := context.Background()

	client, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.GetMission(ctx, operation, name); err != nil {
		if ledger.IsNotFound(err) {
			return printer.ErrorWithContext(
				"mission not found",
				"No persisted record exists for this mission.",
				map[string]string{"Operation": operation, "Mission": name, "Colony": client.Colony()},
				[]string{"Run at least one cycle with the mission configured first"},
			)
		}
		return fmt.Errorf("failed to read mission: %w", err)
	}

	snap, err := client.Load(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load colony: %w", err)
	}
	msg := change(snap.Mission(operation, name))
	if err := client.Commit(ctx, snap); err != nil {
		return fmt.Errorf("failed to save mission: %w", err)
	}

	printer.Success("%s\n", msg)
	return nil
}
