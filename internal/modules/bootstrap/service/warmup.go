package service

import (
	"context"
	"time"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	strategy "yingyang_bot/internal/modules/strategy/service"
	upbit "yingyang_bot/internal/modules/upbit_client/service"
	"yingyang_bot/pkg/logger"
)

// Notifier — телеграм глазами прогрева.
type Notifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Warmuper заливает REST-историю в хаб до старта стрима: движок
// готов сразу, а не через window+span живых свечей.
type Warmuper struct {
	upbit *upbit.Client
	hub   *strategy.Hub
	n     Notifier
	cfg   *config.Config
}

func NewWarmuper(client *upbit.Client, hub *strategy.Hub, n Notifier, cfg *config.Config) *Warmuper {
	return &Warmuper{
		upbit: client,
		hub:   hub,
		n:     n,
		cfg:   cfg,
	}
}

func (w *Warmuper) Warmup(ctx context.Context) error {
	need := w.cfg.CandleCount
	started := time.Now()

	w.n.SendService(ctx, "🔥 REST warmup start: %s %s, need=%d", w.cfg.Market, w.cfg.Interval, need)

	candles, err := w.upbit.GetCandles(ctx, w.cfg.Market, w.cfg.Interval, need)
	if err != nil {
		w.n.SendService(ctx, "⚠️ REST warmup failed: %v", err)
		return err
	}
	step, err := helper.IntervalDuration(w.cfg.Interval)
	if err != nil {
		return err
	}

	for _, c := range candles {
		w.hub.OnTick(ctx, models.CandleTick{
			Market:   w.cfg.Market,
			Interval: w.cfg.Interval,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
			Start:    c.Time,
			End:      c.Time.Add(step),
		})
	}

	logger.Info("[BOOT] warmup done: %d candles in %s", len(candles), time.Since(started).Round(time.Millisecond))
	w.n.SendService(ctx, "✅ REST warmup finished: %d candles.", len(candles))
	return nil
}
