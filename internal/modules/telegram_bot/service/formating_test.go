package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	healthsvc "yingyang_bot/internal/modules/health/service"
	strategysvc "yingyang_bot/internal/modules/strategy/service"
)

func reportCfg() *config.Config {
	cfg := &config.Config{Market: "KRW-BTC", Interval: "minute30"}
	cfg.PresetName = "classic"
	return cfg
}

// Формат отчёта — построчный контракт, проверяем строку целиком.
func TestFormatCycleReport(t *testing.T) {
	rep := &models.CycleReport{
		Market:         "KRW-BTC",
		Interval:       "minute30",
		Signal:         models.SideBuy,
		Price:          34561000,
		Time:           time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
		Oscillator:     -89.5533,
		OscillatorSlow: -94.7767,
		Position:       models.PositionLong,
		TradeResult:    "Bought KRW-BTC for 300000 KRW (30% of balance)",
	}

	want := "YingYang Bot Update for KRW-BTC:\n" +
		"Interval: minute30\n" +
		"Signal: Buy\n" +
		"Price: 34561000\n" +
		"Timestamp: 2024-01-02 10:30:00\n" +
		"YYL: -89.55\n" +
		"YYL_slow: -94.78\n" +
		"Current Position: long\n" +
		"Trade Result: Bought KRW-BTC for 300000 KRW (30% of balance)"
	assert.Equal(t, want, formatCycleReport(rep))
}

func TestFormatCycleReport_NoSignal(t *testing.T) {
	rep := &models.CycleReport{
		Market:   "KRW-BTC",
		Interval: "minute30",
		Signal:   models.SideNone,
		Position: models.PositionNeutral,
	}
	got := formatCycleReport(rep)
	assert.Contains(t, got, "Signal: No Signal")
	assert.Contains(t, got, "Current Position: neutral")
}

func TestFmtPrice(t *testing.T) {
	assert.Equal(t, "34561000", fmtPrice(34561000), "без экспоненты")
	assert.Equal(t, "0.5", fmtPrice(0.5))
	assert.Equal(t, "71", fmtPrice(71))
	assert.Equal(t, "0", fmtPrice(0))
}

func TestFormatStartedAndStopped(t *testing.T) {
	at := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	got := formatStarted(reportCfg(), at)
	assert.Equal(t, "YingYang Trading Bot started at 2024-01-02 10:30:00 with 30m intervals (KRW-BTC, preset classic)", got)

	assert.Equal(t, "YingYang Trading Bot stopped", formatStopped())
}

func TestFormatGreeting(t *testing.T) {
	got := formatGreeting(reportCfg())
	assert.Contains(t, got, "`KRW-BTC`")
	assert.Contains(t, got, "*classic*")
	assert.Contains(t, got, "/status")
}

func TestFormatStatus(t *testing.T) {
	cfg := reportCfg()
	state := healthsvc.NewState()
	state.SetWSConnected(true)
	state.TouchCycle(time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), true)

	engine := strategysvc.NewYingYang("KRW-BTC", "minute30",
		models.StrategySettings{UseEMA: true, Window: 20, Span: 10}, 300)

	entries := []models.JournalEntry{{
		Signal:     "Buy",
		SignalTime: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
		Price:      34561000,
		Position:   models.PositionLong,
	}}

	got := formatStatus(cfg, state, engine, false, entries)
	assert.Contains(t, got, "Статус")
	assert.Contains(t, got, "Торговля: вкл")
	assert.Contains(t, got, "WS: вкл")
	assert.Contains(t, got, "warmup 0/30", "движок ещё не прогрет")
	assert.Contains(t, got, "Последний цикл:")
	assert.Contains(t, got, "(ok)")
	assert.Contains(t, got, "*Журнал:*")
	assert.Contains(t, got, "`01-02 10:30` Buy @ 34561000 (long)")
}

func TestParseConfirmData(t *testing.T) {
	verb, token := parseConfirmData("CONF::171234")
	assert.Equal(t, "CONF", verb)
	assert.Equal(t, "171234", token)

	verb, token = parseConfirmData("REJ::a::b")
	assert.Equal(t, "REJ", verb)
	assert.Equal(t, "a::b", token, "токен берётся до первого разделителя")

	verb, token = parseConfirmData("plain")
	assert.Empty(t, verb)
	assert.Empty(t, token)
}

func TestFormatStatus_PausedWithoutJournal(t *testing.T) {
	engine := strategysvc.NewYingYang("KRW-BTC", "minute30",
		models.StrategySettings{UseEMA: true, Window: 20, Span: 10}, 300)

	got := formatStatus(reportCfg(), healthsvc.NewState(), engine, true, nil)
	assert.Contains(t, got, "Торговля: выкл")
	assert.Contains(t, got, "WS: выкл")
	assert.NotContains(t, got, "Журнал")
	assert.NotContains(t, got, "Последний цикл")
}
