package postgres

import (
	"context"
	"fmt"

	"yingyang_bot/internal/modules/config"
	"yingyang_bot/pkg/db"

	"go.uber.org/fx"
)

// Module поднимает пул соединений и менеджер транзакций для журнала.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				pool, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.Postgres.DSN,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create pool: %w", err)
				}

				return db.NewPgTxManager(pool), nil
			},
			func(m *db.PgTxManager) db.TxManager {
				return m
			},
		),
	)
}
