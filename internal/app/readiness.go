package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is the minimal interface for a database pool capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// AIHealthchecker is the minimal interface for the completion provider probe.
type AIHealthchecker interface{ Healthcheck(ctx context.Context) error }

// BuildReadinessChecks returns the db, redis, and ai readiness checks.
func BuildReadinessChecks(pool Pinger, rdb *redis.Client, ai AIHealthchecker) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	dbCheck := func(ctx context.Context) error {
		if pool == nil {
			return fmt.Errorf("db not configured")
		}
		return pool.Ping(ctx)
	}
	redisCheck := func(ctx context.Context) error {
		if rdb == nil {
			return fmt.Errorf("redis not configured")
		}
		return rdb.Ping(ctx).Err()
	}
	aiCheck := func(ctx context.Context) error {
		if ai == nil {
			return fmt.Errorf("completion provider not configured")
		}
		return ai.Healthcheck(ctx)
	}
	return dbCheck, redisCheck, aiCheck
}
