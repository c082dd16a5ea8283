package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	"yingyang_bot/pkg/logger"
)

const (
	configFilePathENV = "CONFIG_FILE"
	accessKeyENV      = "UPBIT_ACCESS_KEY"
	secretKeyENV      = "UPBIT_SECRET_KEY"
	tokenTelegramENV  = "TELEGRAM_BOT_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	databaseDSN       = "PG_DSN"
)

// Config ...
// Приоритет: точечные env-переопределения > yaml > env-дефолты > литералы.
type Config struct {
	Market      string `yaml:"market"`
	Interval    string `yaml:"interval"`
	CandleCount int    `yaml:"candle_count"`

	Strategy struct {
		Preset string `yaml:"preset"`
		// указатель: иначе не отличить «false в yaml» от «не задано»
		UseEMA *bool `yaml:"use_ema"`
		Window int   `yaml:"window"`
		Span   int   `yaml:"span"`
	} `yaml:"strategy"`

	Trade struct {
		Enabled     bool    `yaml:"enabled"`
		PositionPct float64 `yaml:"position_pct"`
		Confirm     bool    `yaml:"confirm"`
		// только из env (TRADE_CONFIRM_TIMEOUT), yaml.v2 не умеет duration
		ConfirmTimeout time.Duration `yaml:"-"`
	} `yaml:"trade"`

	Upbit struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		RestURL   string `yaml:"rest_url"`
		WsURL     string `yaml:"ws_url"`
	} `yaml:"upbit"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	Health struct {
		Addr string `yaml:"addr"`
	} `yaml:"health"`

	Websocket struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"websocket"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`

	// Выведенные на старте поля, в yaml их нет.
	StrategySettings models.StrategySettings `yaml:"-"`
	PresetName       string                  `yaml:"-"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load() // best-effort, ключи часто лежат в .env рядом

	config := Config{
		Market:      getenvDefault("MARKET", "KRW-BTC"),
		Interval:    getenvDefault("INTERVAL", "minute30"),
		CandleCount: intFromEnv("CANDLE_COUNT", 300),
	}
	config.Trade.Enabled = boolFromEnv("TRADE_ENABLED", true)
	config.Trade.PositionPct = floatFromEnv("TRADE_POSITION_PCT", 0.3)
	config.Trade.Confirm = boolFromEnv("TRADE_CONFIRM", false)
	config.Trade.ConfirmTimeout = durationFromEnv("TRADE_CONFIRM_TIMEOUT", "90s")
	config.Upbit.RestURL = getenvDefault("UPBIT_REST_URL", "https://api.upbit.com")
	config.Upbit.WsURL = getenvDefault("UPBIT_WS_URL", "wss://api.upbit.com/websocket/v1")
	config.Health.Addr = getenvDefault("HEALTH_ADDR", ":8080")
	config.Websocket.Enabled = boolFromEnv("WS_ENABLED", true)
	config.Tracing.Enabled = boolFromEnv("TRACING_ENABLED", false)
	config.Tracing.Host = getenvDefault("JAEGER_HOST", "127.0.0.1")
	config.Tracing.Port = intFromEnv("JAEGER_PORT", 6831)
	config.Strategy.Preset = getenvDefault("STRATEGY_PRESET", "")
	config.Strategy.Window = intFromEnv("STRATEGY_WINDOW", 0)
	config.Strategy.Span = intFromEnv("STRATEGY_SPAN", 0)
	if v := os.Getenv("STRATEGY_USE_EMA"); v != "" {
		b := boolFromEnv("STRATEGY_USE_EMA", true)
		config.Strategy.UseEMA = &b
	}

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		logger.Warn("config file configs/%s not found, using env/defaults only", configFileName)
	} else {
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
	}

	// точечные переопределения поверх yaml: секреты и адреса почти
	// всегда приходят из окружения
	if v := os.Getenv(accessKeyENV); v != "" {
		config.Upbit.AccessKey = v
	} else if v := os.Getenv("ACCESS_KEY"); v != "" {
		config.Upbit.AccessKey = v // имя из старой выкладки
	}
	if v := os.Getenv(secretKeyENV); v != "" {
		config.Upbit.SecretKey = v
	} else if v := os.Getenv("SECRET_KEY"); v != "" {
		config.Upbit.SecretKey = v
	}
	if v := os.Getenv(tokenTelegramENV); v != "" {
		config.Telegram.Token = v
	}
	if v := os.Getenv(chatIDTelegramENV); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if v := os.Getenv(databaseDSN); v != "" {
		config.Postgres.DSN = v
	}

	if err := config.resolveStrategy(); err != nil {
		return nil, err
	}
	if _, err := helper.IntervalUnit(config.Interval); err != nil {
		return nil, err
	}
	if config.CandleCount <= 0 {
		return nil, fmt.Errorf("candle_count must be positive, got %d", config.CandleCount)
	}
	if config.Trade.PositionPct <= 0 || config.Trade.PositionPct > 1 {
		return nil, fmt.Errorf("trade.position_pct must be in (0;1], got %v", config.Trade.PositionPct)
	}

	return &config, nil
}

// resolveStrategy: пресет (если задан) кладёт базу, явные window/span/
// use_ema из yaml или env добивают поверх.
func (c *Config) resolveStrategy() error {
	settings := models.StrategySettings{UseEMA: true, Window: 20, Span: 10}
	name := "classic"

	if p := c.Strategy.Preset; p != "" {
		preset, ok := models.Presets[p]
		if !ok {
			return fmt.Errorf("unknown strategy preset %q", p)
		}
		preset.Apply(&settings)
		name = p
	}
	custom := false
	if c.Strategy.UseEMA != nil {
		settings.UseEMA = *c.Strategy.UseEMA
		custom = true
	}
	if c.Strategy.Window != 0 {
		if c.Strategy.Window < 0 {
			return fmt.Errorf("strategy.window must be positive, got %d", c.Strategy.Window)
		}
		settings.Window = c.Strategy.Window
		custom = true
	}
	if c.Strategy.Span != 0 {
		if c.Strategy.Span < 0 {
			return fmt.Errorf("strategy.span must be positive, got %d", c.Strategy.Span)
		}
		settings.Span = c.Strategy.Span
		custom = true
	}
	if custom && c.Strategy.Preset == "" {
		name = "custom"
	}

	c.StrategySettings = settings
	c.PresetName = name
	return nil
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

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
