package runner

import (
	"context"
	"fmt"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	healthsvc "yingyang_bot/internal/modules/health/service"
	"yingyang_bot/pkg/logger"
	"yingyang_bot/pkg/tracing"
)

// executeTrade: Buy из нейтрали покупает на долю KRW-баланса, Sell из
// лонга продаёт базу целиком, остальное no-op. Ошибка сделки цикл не
// валит и уходит строкой в отчёт.
func (r *Runner) executeTrade(ctx context.Context, s *models.Summary, position *models.Position) string {
	span, ctx := tracing.StartSpan(ctx, "runner.trade")
	defer span.Finish()

	switch {
	case s.Side == models.SideBuy && *position == models.PositionNeutral:
		return r.buy(ctx, s, position)
	case s.Side == models.SideSell && *position == models.PositionLong:
		return r.sell(ctx, s, position)
	default:
		return fmt.Sprintf("No trade executed. Current position: %s, Signal: %s", *position, s.Side.Label())
	}
}

func (r *Runner) buy(ctx context.Context, s *models.Summary, position *models.Position) string {
	if !r.cfg.Trade.Enabled {
		return "Trading disabled. No order placed. Signal: Buy"
	}
	if r.cfg.Trade.Confirm && !r.confirm(ctx, s) {
		return "Trade declined: Buy not confirmed"
	}

	quote := helper.QuoteCurrency(r.cfg.Market)
	balance, err := r.upbit.Balance(ctx, quote)
	if err != nil {
		return r.tradeFailed("buy", err)
	}
	amount := balance * r.cfg.Trade.PositionPct

	order, err := r.upbit.BuyMarket(ctx, r.cfg.Market, amount)
	if err != nil {
		healthsvc.OrdersTotal.WithLabelValues("buy", "error").Inc()
		return r.tradeFailed("buy", err)
	}
	healthsvc.OrdersTotal.WithLabelValues("buy", "ok").Inc()

	*position = models.PositionLong
	logger.Info("[TRADE] buy %s uuid=%s amount=%.0f %s", r.cfg.Market, order.UUID, amount, quote)
	return fmt.Sprintf("Bought %s for %.0f %s (%.0f%% of balance)",
		r.cfg.Market, amount, quote, r.cfg.Trade.PositionPct*100)
}

func (r *Runner) sell(ctx context.Context, s *models.Summary, position *models.Position) string {
	if !r.cfg.Trade.Enabled {
		return "Trading disabled. No order placed. Signal: Sell"
	}
	if r.cfg.Trade.Confirm && !r.confirm(ctx, s) {
		return "Trade declined: Sell not confirmed"
	}

	base := helper.BaseCurrency(r.cfg.Market)
	volume, err := r.upbit.Balance(ctx, base)
	if err != nil {
		return r.tradeFailed("sell", err)
	}

	order, err := r.upbit.SellMarket(ctx, r.cfg.Market, volume)
	if err != nil {
		healthsvc.OrdersTotal.WithLabelValues("sell", "error").Inc()
		return r.tradeFailed("sell", err)
	}
	healthsvc.OrdersTotal.WithLabelValues("sell", "ok").Inc()

	*position = models.PositionNeutral
	logger.Info("[TRADE] sell %s uuid=%s volume=%v", r.cfg.Market, order.UUID, volume)
	return fmt.Sprintf("Sold %v %s", volume, r.cfg.Market)
}

func (r *Runner) confirm(ctx context.Context, s *models.Summary) bool {
	if r.n == nil {
		return false
	}
	prompt := fmt.Sprintf("🔔 %s: сигнал *%s* @ %.0f\nYYL=%.2f slow=%.2f\nИсполнить?",
		s.Market, s.Side, s.Price, s.Oscillator, s.OscillatorSlow)
	return r.n.Confirm(ctx, prompt, r.cfg.Trade.ConfirmTimeout)
}

func (r *Runner) tradeFailed(op string, err error) string {
	logger.Error("[TRADE] %s failed: %v", op, err)
	return fmt.Sprintf("Trade execution failed: %v", err)
}
