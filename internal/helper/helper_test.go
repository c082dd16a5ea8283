package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalUnit(t *testing.T) {
	cases := []struct {
		in   string
		unit int
	}{
		{"minute1", 1},
		{"minute30", 30},
		{"minute240", 240},
		{" MINUTE60 ", 60}, // регистр и пробелы из env прощаем
	}
	for _, c := range cases {
		u, err := IntervalUnit(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.unit, u, c.in)
	}

	for _, bad := range []string{"", "minute2", "day", "30m"} {
		_, err := IntervalUnit(bad)
		assert.Error(t, err, bad)
	}
}

func TestIntervalDuration(t *testing.T) {
	d, err := IntervalDuration("minute30")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)

	_, err = IntervalDuration("hour1")
	assert.Error(t, err)
}

func TestWSCandleType(t *testing.T) {
	typ, err := WSCandleType("minute30")
	require.NoError(t, err)
	assert.Equal(t, "candle.30m", typ)

	typ, err = WSCandleType("minute1")
	require.NoError(t, err)
	assert.Equal(t, "candle.1m", typ)

	_, err = WSCandleType("weird")
	assert.Error(t, err)
}

func TestIntervalLabel(t *testing.T) {
	assert.Equal(t, "30m", IntervalLabel("minute30"))
	assert.Equal(t, "240m", IntervalLabel("minute240"))
	// незнакомый интервал отдаём как есть, подпись не критична
	assert.Equal(t, "day", IntervalLabel("day"))
}

func TestParseCandleTime(t *testing.T) {
	ts, err := ParseCandleTime("2024-01-02T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), ts)

	_, err = ParseCandleTime("2024-01-02 10:30:00")
	assert.Error(t, err)
}

func TestCurrencySplit(t *testing.T) {
	assert.Equal(t, "BTC", BaseCurrency("KRW-BTC"))
	assert.Equal(t, "KRW", QuoteCurrency("KRW-BTC"))

	// без дефиса: базой считаем всю строку, квоты нет
	assert.Equal(t, "BTC", BaseCurrency("BTC"))
	assert.Equal(t, "", QuoteCurrency("BTC"))

	// дефис в конце не даёт пустой базы
	assert.Equal(t, "KRW-", BaseCurrency("KRW-"))
	assert.Equal(t, "KRW", QuoteCurrency("KRW-"))
}
