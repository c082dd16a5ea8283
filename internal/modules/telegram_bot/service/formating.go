package service

import (
	"fmt"
	"strings"
	"time"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	healthsvc "yingyang_bot/internal/modules/health/service"
	strategysvc "yingyang_bot/internal/modules/strategy/service"
)

const timeLayout = "2006-01-02 15:04:05"

// formatCycleReport — поля отчёта построчно, формат стабильный.
func formatCycleReport(rep *models.CycleReport) string {
	return fmt.Sprintf(
		"YingYang Bot Update for %s:\n"+
			"Interval: %s\n"+
			"Signal: %s\n"+
			"Price: %s\n"+
			"Timestamp: %s\n"+
			"YYL: %.2f\n"+
			"YYL_slow: %.2f\n"+
			"Current Position: %s\n"+
			"Trade Result: %s",
		rep.Market,
		rep.Interval,
		rep.Signal.Label(),
		fmtPrice(rep.Price),
		rep.Time.Format(timeLayout),
		rep.Oscillator,
		rep.OscillatorSlow,
		rep.Position,
		rep.TradeResult,
	)
}

func formatGreeting(cfg *config.Config) string {
	return fmt.Sprintf(
		"Привет! Я индикаторный бот Ying-Yang Volatility.\n\n"+
			"Рынок: `%s`, интервал `%s`, пресет *%s*.\n"+
			"Торгую по плановым циклам, стрим только смотрю.\n\n"+
			"Команды: /status, /pause, /resume, /scan.",
		cfg.Market, cfg.Interval, cfg.PresetName,
	)
}

func formatStarted(cfg *config.Config, at time.Time) string {
	return fmt.Sprintf("YingYang Trading Bot started at %s with %s intervals (%s, preset %s)",
		at.Format(timeLayout), helper.IntervalLabel(cfg.Interval), cfg.Market, cfg.PresetName)
}

func formatStopped() string {
	return "YingYang Trading Bot stopped"
}

func formatStatus(
	cfg *config.Config,
	state *healthsvc.State,
	engine strategysvc.Engine,
	paused bool,
	entries []models.JournalEntry,
) string {
	var b strings.Builder

	b.WriteString("*📊 Статус*\n\n")
	fmt.Fprintf(&b, "Рынок: `%s` / `%s`\n", cfg.Market, cfg.Interval)
	fmt.Fprintf(&b, "Пресет: `%s`\n", cfg.PresetName)
	fmt.Fprintf(&b, "Торговля: %s\n", onOff(!paused))
	fmt.Fprintf(&b, "Движок: %s\n", engine.Dump())
	fmt.Fprintf(&b, "WS: %s\n", onOff(state.WSConnected()))
	if last, ok := state.LastCycle(); !last.IsZero() {
		fmt.Fprintf(&b, "Последний цикл: `%s` (%s)\n", last.Format(timeLayout), okFail(ok))
	}
	fmt.Fprintf(&b, "Аптайм: `%s`\n", state.Uptime().Round(time.Second))

	if len(entries) > 0 {
		b.WriteString("\n*Журнал:*\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "`%s` %s @ %s (%s)\n",
				e.SignalTime.Format("01-02 15:04"), e.Signal, fmtPrice(e.Price), e.Position)
		}
	}
	return b.String()
}

func okFail(v bool) string {
	if v {
		return "ok"
	}
	return "ошибка"
}
