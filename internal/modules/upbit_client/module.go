package upbit_client

import (
	"yingyang_bot/internal/modules/upbit_client/service"

	"go.uber.org/fx"
)

// Module — REST-клиент Upbit: свечи, балансы, рыночные ордера.
func Module() fx.Option {
	return fx.Module("upbit_client",
		fx.Provide(
			service.NewClient,
		),
	)
}
