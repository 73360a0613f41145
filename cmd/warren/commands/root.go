package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
	redisURL   string
	colonyName string
)

var rootCmd = &cobra.Command{
	Use:   "warren",
	Short: "Warren - workforce scheduling for simulated colonies",
	Long: `Warren keeps a colony staffed: every cycle each mission counts its
units, recruits successors ahead of expiry, pairs partners, leases shared
maintenance units and keeps its roads repaired.

Mission state is kept in Redis so rosters survive between cycles.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is not an error
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Called once by main.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "warren.yml", "Path to warren.yml")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "", "Redis URL (default $REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&colonyName, "colony", "", "Colony name (default $WARREN_COLONY, then the config's colony)")
}
