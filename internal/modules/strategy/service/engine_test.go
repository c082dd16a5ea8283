package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yingyang_bot/internal/models"
)

func tickAt(i int, close float64) models.CandleTick {
	start := testBase.Add(time.Duration(i) * 30 * time.Minute)
	return models.CandleTick{
		Market:   "KRW-BTC",
		Interval: "minute30",
		Open:     close,
		High:     close,
		Low:      close,
		Close:    close,
		Start:    start,
		End:      start.Add(30 * time.Minute),
	}
}

func TestYingYang_WarmupThenReady(t *testing.T) {
	e := NewYingYang("KRW-BTC", "minute30", smaFast, 10)

	require.False(t, e.IsReady())
	assert.Contains(t, e.Dump(), "warmup 0/4")

	for i, close := range []float64{100, 90, 80} {
		sig, fired, became := e.OnCandle(tickAt(i, close))
		assert.False(t, fired, "i=%d", i)
		assert.False(t, became, "i=%d", i)
		assert.Equal(t, models.Signal{}, sig)
	}
	require.False(t, e.IsReady())
	require.Nil(t, e.Last())

	// на четвёртой свече сводка впервые определена
	sig, fired, became := e.OnCandle(tickAt(3, 70))
	assert.True(t, became)
	assert.False(t, fired, "флипа ещё не было")
	assert.Equal(t, models.Signal{}, sig)

	require.True(t, e.IsReady())
	require.NotNil(t, e.Last())
	assert.Contains(t, e.Dump(), "YYL=")
	assert.Contains(t, e.Dump(), "signal=No Signal")
}

func TestYingYang_FiresBuyOnceAndDedupes(t *testing.T) {
	e := NewYingYang("KRW-BTC", "minute30", smaFast, 10)
	for i, close := range []float64{100, 90, 80, 70} {
		e.OnCandle(tickAt(i, close))
	}

	sig, fired, became := e.OnCandle(tickAt(4, 71))
	require.True(t, fired)
	assert.False(t, became, "готовность уже объявлена")
	assert.Equal(t, models.SideBuy, sig.Side)
	assert.Equal(t, "KRW-BTC", sig.Market)
	assert.Equal(t, "minute30", sig.Interval)
	assert.InDelta(t, 71, sig.Price, 1e-12)
	assert.Equal(t, models.StrategyYingYang, sig.Strategy)
	assert.Contains(t, sig.Reason, "YYL=")

	// повтор той же свечи после реконнекта не даёт второго сигнала
	sig, fired, became = e.OnCandle(tickAt(4, 71))
	assert.False(t, fired)
	assert.False(t, became)
	assert.Equal(t, models.Signal{}, sig)
}

func TestYingYang_IgnoresForeignAndStaleTicks(t *testing.T) {
	e := NewYingYang("KRW-BTC", "minute30", smaFast, 10)
	for i, close := range []float64{100, 90, 80, 70} {
		e.OnCandle(tickAt(i, close))
	}
	before := e.Dump()

	foreign := tickAt(4, 71)
	foreign.Market = "KRW-ETH"
	_, fired, _ := e.OnCandle(foreign)
	assert.False(t, fired)

	zero := tickAt(4, 0)
	_, fired, _ = e.OnCandle(zero)
	assert.False(t, fired)

	_, fired, _ = e.OnCandle(tickAt(1, 90))
	assert.False(t, fired, "свеча из прошлого")

	assert.Equal(t, before, e.Dump(), "буфер не сдвинулся")
	assert.Len(t, e.buf, 4)
}

func TestYingYang_BufferStaysBounded(t *testing.T) {
	e := NewYingYang("KRW-BTC", "minute30", smaFast, 4)
	for i := 0; i < 12; i++ {
		e.OnCandle(tickAt(i, 100+float64(i)))
	}
	assert.Len(t, e.buf, 4)
	assert.True(t, e.buf[0].Time.Equal(testBase.Add(8*30*time.Minute)), "остаётся хвост серии")
}

func TestNewYingYang_CapacityFloor(t *testing.T) {
	e := NewYingYang("KRW-BTC", "minute30", smaFast, 0)
	assert.Equal(t, 4, e.capacity, "минимум Window+Span")
	assert.Equal(t, "yingyang", e.Name())
}
