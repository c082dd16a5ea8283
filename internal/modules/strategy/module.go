package strategy

import (
	"context"

	"go.uber.org/fx"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/strategy/service"
	"yingyang_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			service.NewEngine, // service.Engine
			service.NewHub,    // *service.Hub
		),

		fx.Invoke(func(lc fx.Lifecycle, hub *service.Hub, ticks <-chan models.CandleTick) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						ctx := context.Background()
						logger.Info("[STRAT] hub loop started")
						for t := range ticks {
							hub.OnTick(ctx, t)
						}
						logger.Info("[STRAT] hub loop stopped")
					}()
					return nil
				},
			})
		}),
	)
}
