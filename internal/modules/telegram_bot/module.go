package telegram

import (
	"context"

	"go.uber.org/fx"

	strategysvc "yingyang_bot/internal/modules/strategy/service"
	"yingyang_bot/internal/modules/telegram_bot/service"
	"yingyang_bot/internal/runner"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// Сервис Telegram как *service.Telegram
		fx.Provide(
			service.NewTelegram,
		),

		// Поздняя проводка нотифаеров: раннеру и хабу нужен телеграм,
		// а телеграму в конструкторе нужен сам раннер.
		fx.Invoke(func(r *runner.Runner, hub *strategysvc.Hub, t *service.Telegram) {
			r.SetNotifier(t)
			hub.SetNotifier(t)
		}),

		// Запуск цикла обновлений через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(startCtx context.Context) error {
						go t.Start(ctx)
						t.SendStarted(startCtx)
						return nil
					},
					OnStop: func(stopCtx context.Context) error {
						t.SendStopped(stopCtx)
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
