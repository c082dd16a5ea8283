package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
)

// Config — плоский env-конфиг одноразового скана. Без yaml и без
// торговых ключей: скану хватает публичных свечей.
type Config struct {
	// Рынок
	Market      string // .env: MARKET (KRW-BTC)
	Interval    string // .env: INTERVAL (minute30)
	CandleCount int    // .env: CANDLE_COUNT (300)

	// Стратегия
	Preset string // .env: STRATEGY_PRESET (classic|swing|scalp)
	UseEMA bool   // .env: STRATEGY_USE_EMA поверх пресета
	Window int    // .env: STRATEGY_WINDOW поверх пресета
	Span   int    // .env: STRATEGY_SPAN поверх пресета

	// Upbit
	UpbitRestURL string // .env: UPBIT_REST_URL

	// Telegram: нет токена — отчёт уходит в stdout
	TelegramBotToken string
	TelegramChatID   int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		Market:           getenvDefault("MARKET", "KRW-BTC"),
		Interval:         getenvDefault("INTERVAL", "minute30"),
		CandleCount:      intFromEnv("CANDLE_COUNT", 300),
		Preset:           getenvDefault("STRATEGY_PRESET", "classic"),
		UpbitRestURL:     getenvDefault("UPBIT_REST_URL", "https://api.upbit.com"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}

	preset, ok := models.Presets[cfg.Preset]
	if !ok {
		return nil, fmt.Errorf("unknown strategy preset %q", cfg.Preset)
	}
	settings := models.StrategySettings{}
	preset.Apply(&settings)
	cfg.UseEMA = boolFromEnv("STRATEGY_USE_EMA", settings.UseEMA)
	cfg.Window = intFromEnv("STRATEGY_WINDOW", settings.Window)
	cfg.Span = intFromEnv("STRATEGY_SPAN", settings.Span)

	if _, err := helper.IntervalUnit(cfg.Interval); err != nil {
		return nil, err
	}
	if cfg.CandleCount <= 0 {
		return nil, fmt.Errorf("CANDLE_COUNT must be positive, got %d", cfg.CandleCount)
	}
	if cfg.Window <= 0 || cfg.Span <= 0 {
		return nil, fmt.Errorf("STRATEGY_WINDOW and STRATEGY_SPAN must be positive")
	}
	return cfg, nil
}

// Settings собирает параметры стратегии в модельный вид.
func (c *Config) Settings() models.StrategySettings {
	return models.StrategySettings{UseEMA: c.UseEMA, Window: c.Window, Span: c.Span}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}
