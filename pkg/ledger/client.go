package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Client provides colony-scoped Redis operations for the ledger.
// All keys are automatically namespaced with the colony name.
type Client struct {
	rdb    *redis.Client
	colony string
}

// NewClient creates a new ledger client for the specified colony.
// Returns an error if colony is empty.
func NewClient(redisOpts *redis.Options, colony string) (*Client, error) {
	if colony == "" {
		return nil, fmt.Errorf("colony name cannot be empty")
	}

	return &Client{
		rdb:    redis.NewClient(redisOpts),
		colony: colony,
	}, nil
}

// Colony returns the colony name this client is scoped to.
func (c *Client) Colony() string {
	return c.colony
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// RedisClient exposes the underlying Redis client for inspection tooling.
func (c *Client) RedisClient() *redis.Client {
	return c.rdb
}

// Load reads every record of the colony into a new Snapshot for the given tick.
// Records that fail to deserialize are reported as an error; the cycle should not
// run against a partially loaded colony.
func (c *Client) Load(ctx context.Context, tick int64) (*Snapshot, error) {
	snap := NewSnapshot(tick)

	seen := make(map[string]struct{})
	iter := c.rdb.Scan(ctx, 0, ColonyPattern(c.colony), 100).Iterator()
	for iter.Next(ctx) {
		seen[iter.Val()] = struct{}{}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan colony keys: %w", err)
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return snap, nil
	}

	pipe := c.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.HGetAll(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read colony records: %w", err)
	}

	for i, key := range keys {
		hash, err := cmds[i].Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if len(hash) == 0 {
			continue
		}

		kind, parts := parseKey(c.colony, key)
		switch kind {
		case kindMission:
			m, err := HashToMission(hash)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize mission %s: %w", key, err)
			}
			snap.missions[missionID(parts[0], parts[1])] = m
		case kindUnit:
			u, err := HashToUnit(hash)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize unit %s: %w", key, err)
			}
			snap.units[parts[0]] = u
		case kindLeases:
			reg := make(map[string]string, len(hash))
			for role, name := range hash {
				reg[role] = name
			}
			snap.leases[parts[0]] = reg
		}
	}

	return snap, nil
}

// Commit writes a snapshot back to Redis in a single MULTI/EXEC transaction.
// Every record is fully replaced; deleted units and emptied lease registries are removed.
func (c *Client) Commit(ctx context.Context, snap *Snapshot) error {
	missionHashes := make(map[string]map[string]interface{}, len(snap.missions))
	for _, m := range snap.missions {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid mission record: %w", err)
		}
		hash, err := MissionToHash(m)
		if err != nil {
			return fmt.Errorf("failed to serialize mission %s/%s: %w", m.Operation, m.Name, err)
		}
		missionHashes[MissionKey(c.colony, m.Operation, m.Name)] = hash
	}

	unitHashes := make(map[string]map[string]interface{}, len(snap.units))
	for name, u := range snap.units {
		hash, err := UnitToHash(u)
		if err != nil {
			return fmt.Errorf("failed to serialize unit %s: %w", name, err)
		}
		unitHashes[UnitKey(c.colony, name)] = hash
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, hash := range missionHashes {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, hash)
		}

		for key, hash := range unitHashes {
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, hash)
		}

		for name := range snap.deletedUnits {
			pipe.Del(ctx, UnitKey(c.colony, name))
		}

		for facilityID := range snap.dirtyLeases {
			key := LeasesKey(c.colony, facilityID)
			pipe.Del(ctx, key)
			reg := snap.leases[facilityID]
			if len(reg) == 0 {
				continue
			}
			fields := make(map[string]interface{}, len(reg))
			for role, name := range reg {
				fields[role] = name
			}
			pipe.HSet(ctx, key, fields)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// GetUnit retrieves a single unit record outside the cycle model.
// Returns (nil, redis.Nil) if the record doesn't exist.
func (c *Client) GetUnit(ctx context.Context, name string) (*UnitRecord, error) {
	hash, err := c.rdb.HGetAll(ctx, UnitKey(c.colony, name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read unit from Redis: %w", err)
	}
	if len(hash) == 0 {
		return nil, redis.Nil
	}
	return HashToUnit(hash)
}

// GetMission retrieves a single mission record outside the cycle model.
// Returns (nil, redis.Nil) if the record doesn't exist.
func (c *Client) GetMission(ctx context.Context, operation, name string) (*MissionRecord, error) {
	hash, err := c.rdb.HGetAll(ctx, MissionKey(c.colony, operation, name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read mission from Redis: %w", err)
	}
	if len(hash) == 0 {
		return nil, redis.Nil
	}
	return HashToMission(hash)
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
