package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yingyang_bot/internal/models"
)

func clearScanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MARKET", "INTERVAL", "CANDLE_COUNT",
		"STRATEGY_PRESET", "STRATEGY_USE_EMA", "STRATEGY_WINDOW", "STRATEGY_SPAN",
		"UPBIT_REST_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir()) // чтобы не подцепить чей-то .env
}

func TestLoad_Defaults(t *testing.T) {
	clearScanEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "KRW-BTC", cfg.Market)
	assert.Equal(t, "minute30", cfg.Interval)
	assert.Equal(t, 300, cfg.CandleCount)
	assert.Equal(t, "classic", cfg.Preset)
	assert.Equal(t, "https://api.upbit.com", cfg.UpbitRestURL)
	assert.Empty(t, cfg.TelegramBotToken)
	assert.Zero(t, cfg.TelegramChatID)

	assert.Equal(t, models.StrategySettings{UseEMA: true, Window: 20, Span: 10}, cfg.Settings())
}

func TestLoad_PresetAndOverrides(t *testing.T) {
	clearScanEnv(t)
	t.Setenv("STRATEGY_PRESET", "swing")
	t.Setenv("STRATEGY_WINDOW", "25")

	cfg, err := Load()
	require.NoError(t, err)
	// базу даёт пресет, окно добито поверх
	assert.Equal(t, models.StrategySettings{UseEMA: false, Window: 25, Span: 20}, cfg.Settings())
}

func TestLoad_Telegram(t *testing.T) {
	clearScanEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramBotToken)
	assert.EqualValues(t, -42, cfg.TelegramChatID)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"неизвестный пресет", "STRATEGY_PRESET", "bogus"},
		{"кривой интервал", "INTERVAL", "1h"},
		{"отрицательный candle_count", "CANDLE_COUNT", "-1"},
		{"нулевое окно", "STRATEGY_WINDOW", "-2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearScanEnv(t)
			t.Setenv(c.key, c.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
