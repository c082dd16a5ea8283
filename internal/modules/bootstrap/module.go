package bootstrap

import (
	"context"

	"go.uber.org/fx"

	bootstrap "yingyang_bot/internal/modules/bootstrap/service"
	telegramsvc "yingyang_bot/internal/modules/telegram_bot/service"
	"yingyang_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			bootstrap.NewWarmuper, // -> *bootstrap.Warmuper
			func(t *telegramsvc.Telegram) bootstrap.Notifier {
				return t
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, wu *bootstrap.Warmuper, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					// прогрев не должен задерживать старт и не фатален:
					// без него движок прогреется живыми свечами
					go func() {
						if err := wu.Warmup(ctx); err != nil {
							logger.Error("[BOOT] warmup error: %v", err)
						}
					}()
					return nil
				},
			})
		}),
	)
}
