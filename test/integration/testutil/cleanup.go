//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all mutable tables in reverse-dependency order.
// physical_cards is the seeded catalog and is left alone.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"game_cards",
		"participations",
		"games",
		"event_outbox",
		"users",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
