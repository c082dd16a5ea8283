package upbit_websocket

import (
	"context"

	"go.uber.org/fx"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	"yingyang_bot/internal/modules/upbit_websocket/service"
	"yingyang_bot/pkg/logger"
)

// Module поднимает стример свечей Upbit.
func Module() fx.Option {
	return fx.Module("upbit_websocket",
		fx.Provide(
			service.NewClient,
			func() chan models.CandleTick {
				// общий буфер закрытых свечей: сюда пишут ws-стрим
				// и REST-прогрев, читает хаб стратегии
				return make(chan models.CandleTick, 1024)
			},
			func(ch chan models.CandleTick) <-chan models.CandleTick {
				return ch
			},
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			cfg *config.Config,
			c *service.Client,
			out chan models.CandleTick,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					if !cfg.Websocket.Enabled {
						logger.Info("[WS] стрим выключен конфигом")
						return nil
					}
					go c.Start(ctx, out)
					return nil
				},
			})
		}),
	)
}
