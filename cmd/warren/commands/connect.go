package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dyluth/warren/internal/config"
	"github.com/dyluth/warren/internal/printer"
	"github.com/dyluth/warren/pkg/ledger"
	"github.com/redis/go-redis/v9"
)

// resolveColony picks the colony from the flag, then WARREN_COLONY, then the config.
func resolveColony(flag string, cfg *config.WarrenConfig) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("WARREN_COLONY"); env != "" {
		return env
	}
	if cfg != nil {
		return cfg.Colony
	}
	return ""
}

// resolveRedisURL picks the Redis URL from the flag, then REDIS_URL.
func resolveRedisURL(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("REDIS_URL")
}

// loadConfig wraps config.Load with a formatted error.
func loadConfig(path string) (*config.WarrenConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Check %s against the warren.yml format", path)},
		)
	}
	return cfg, nil
}

// connect opens a ledger client and verifies Redis is reachable.
func connect(ctx context.Context, url, colony string) (*ledger.Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client, err := ledger.NewClient(redisOpts, colony)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", url),
			map[string]string{"Colony": colony},
			[]string{"Check the Redis server is running and --redis-url (or REDIS_URL) is correct"},
		)
	}

	return client, nil
}

// openLedger resolves colony and Redis for the read-only commands.
func openLedger(ctx context.Context) (*ledger.Client, error) {
	var cfg *config.WarrenConfig
	if colonyName == "" && os.Getenv("WARREN_COLONY") == "" {
		var err error
		if cfg, err = loadConfig(configPath); err != nil {
			return nil, err
		}
	}
	colony := resolveColony(colonyName, cfg)

	url := resolveRedisURL(redisURL)
	if url == "" {
		return nil, printer.Error(
			"no Redis URL",
			"Rosters are read from Redis, but no URL was given.",
			[]string{
				"Pass --redis-url redis://localhost:6379",
				"Set REDIS_URL in the environment or a .env file",
			},
		)
	}
	return connect(ctx, url, colony)
}
