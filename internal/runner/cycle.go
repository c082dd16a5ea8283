package runner

import (
	"context"

	"github.com/pkg/errors"

	"yingyang_bot/internal/models"
	healthsvc "yingyang_bot/internal/modules/health/service"
	strategysvc "yingyang_bot/internal/modules/strategy/service"
	"yingyang_bot/pkg/logger"
	"yingyang_bot/pkg/tracing"
)

// cycle — один проход: позиция → свечи → расчёт → сделка → журнал.
// Падение любого этапа, кроме самой сделки, прерывает цикл целиком.
func (r *Runner) cycle(ctx context.Context) (*models.CycleReport, error) {
	span, ctx := tracing.StartSpan(ctx, "runner.cycle")
	defer span.Finish()

	position := r.currentPosition(ctx)

	candles, err := r.fetchCandles(ctx)
	if err != nil {
		return nil, err
	}

	eval, err := r.evaluate(ctx, candles)
	if err != nil {
		return nil, err
	}
	summary := eval.Summary

	if summary.Side == models.SideBuy {
		healthsvc.SignalsTotal.WithLabelValues("buy").Inc()
	}
	if summary.Side == models.SideSell {
		healthsvc.SignalsTotal.WithLabelValues("sell").Inc()
	}

	tradeResult := r.executeTrade(ctx, summary, &position)

	rep := &models.CycleReport{
		Market:         r.cfg.Market,
		Interval:       r.cfg.Interval,
		Signal:         summary.Side,
		Price:          summary.Price,
		Time:           summary.Time,
		Oscillator:     summary.Oscillator,
		OscillatorSlow: summary.OscillatorSlow,
		Position:       position,
		TradeResult:    tradeResult,
	}

	if err := r.writeJournal(ctx, rep, summary); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Runner) currentPosition(ctx context.Context) models.Position {
	span, ctx := tracing.StartSpan(ctx, "runner.position")
	defer span.Finish()

	return r.upbit.CurrentPosition(ctx, r.cfg.Market)
}

func (r *Runner) fetchCandles(ctx context.Context) ([]models.Candle, error) {
	span, ctx := tracing.StartSpan(ctx, "runner.fetch_candles")
	defer span.Finish()

	candles, err := r.upbit.GetCandles(ctx, r.cfg.Market, r.cfg.Interval, r.cfg.CandleCount)
	if err != nil {
		return nil, errors.Wrap(err, "fetch candles")
	}
	logger.Debug("[RUNNER] получено %d свечей %s %s", len(candles), r.cfg.Market, r.cfg.Interval)
	return candles, nil
}

func (r *Runner) evaluate(ctx context.Context, candles []models.Candle) (*strategysvc.Evaluation, error) {
	span, _ := tracing.StartSpan(ctx, "runner.evaluate")
	defer span.Finish()

	eval, err := strategysvc.Evaluate(r.cfg.Market, r.cfg.Interval, candles, r.cfg.StrategySettings)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}
	return eval, nil
}

func (r *Runner) writeJournal(ctx context.Context, rep *models.CycleReport, summary *models.Summary) error {
	span, ctx := tracing.StartSpan(ctx, "runner.journal")
	defer span.Finish()

	entry := &models.JournalEntry{
		Ticker:         rep.Market,
		Interval:       rep.Interval,
		Signal:         rep.Signal.Label(),
		SignalTime:     rep.Time,
		Price:          rep.Price,
		Oscillator:     rep.Oscillator,
		OscillatorSlow: rep.OscillatorSlow,
		Position:       rep.Position,
	}
	if err := r.store.Insert(ctx, entry, summary); err != nil {
		return errors.Wrap(err, "journal")
	}
	return nil
}
