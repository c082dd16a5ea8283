package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"yingyang_bot/internal/config"
	"yingyang_bot/internal/exchange"
	strategy "yingyang_bot/internal/modules/strategy/service"
	"yingyang_bot/internal/notify"
)

// Одноразовый скан: забрать свечи, прогнать индикатор, отдать отчёт.
// Без базы и без планировщика, живёт на env-конфиге.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Notifier: если TELEGRAM_* нет — используем stdout
	var n notify.Notifier = notify.NewStdout()
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		n = tg
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	candles, err := exchange.NewClient(cfg.UpbitRestURL).
		Candles(ctx, cfg.Market, cfg.Interval, cfg.CandleCount)
	if err != nil {
		log.Fatalf("candles: %v", err)
	}

	eval, err := strategy.Evaluate(cfg.Market, cfg.Interval, candles, cfg.Settings())
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}

	n.Send(report(cfg, eval, len(candles)))
}

func report(cfg *config.Config, e *strategy.Evaluation, got int) string {
	s := e.Summary
	mode := "SMA"
	if cfg.UseEMA {
		mode = "EMA"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "YingYang scan %s (%s, %d candles, %s %d/%d):\n",
		s.Market, s.Interval, got, mode, cfg.Window, cfg.Span)
	fmt.Fprintf(&b, "Signal: %s\n", s.Side.Label())
	fmt.Fprintf(&b, "Price: %s\n", strconv.FormatFloat(s.Price, 'f', -1, 64))
	fmt.Fprintf(&b, "Timestamp: %s\n", s.Time.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "YYL: %.2f\n", s.Oscillator)
	fmt.Fprintf(&b, "YYL_slow: %.2f", s.OscillatorSlow)
	return b.String()
}
