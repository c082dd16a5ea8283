package main

import (
	"context"

	"go.uber.org/fx"

	"yingyang_bot/internal/modules/bootstrap"
	"yingyang_bot/internal/modules/config"
	"yingyang_bot/internal/modules/health"
	"yingyang_bot/internal/modules/journal"
	"yingyang_bot/internal/modules/postgres"
	"yingyang_bot/internal/modules/strategy"
	telegram "yingyang_bot/internal/modules/telegram_bot"
	upbit "yingyang_bot/internal/modules/upbit_client"
	upbitws "yingyang_bot/internal/modules/upbit_websocket"
	"yingyang_bot/internal/runner"
	"yingyang_bot/pkg/logger"
	"yingyang_bot/pkg/tracing"
)

const serviceName = "yingyang_bot"

func main() {
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		journal.Module(),
		upbit.Module(),
		upbitws.Module(),
		strategy.Module(),
		health.Module(),
		runner.Module(),
		telegram.Module(),
		bootstrap.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Enabled: cfg.Tracing.Enabled,
		Host:    cfg.Tracing.Host,
		Port:    cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
