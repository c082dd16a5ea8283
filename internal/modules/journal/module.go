package journal

import (
	"context"

	"go.uber.org/fx"

	"yingyang_bot/internal/modules/journal/service"
)

// Module — журнал торговых циклов в постгресе.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			service.NewStore,
		),
		fx.Invoke(func(lc fx.Lifecycle, store *service.Store) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return store.Init(ctx)
				},
			})
		}),
	)
}
