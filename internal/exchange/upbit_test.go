package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandles_SinglePage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/candles/minutes/30", r.URL.Path)
		gotQuery = r.URL.RawQuery
		// биржа отдаёт новые -> старые
		fmt.Fprint(w, `[
			{"market":"KRW-BTC","candle_date_time_utc":"2024-01-02T10:30:00","opening_price":102,"high_price":104,"low_price":101,"trade_price":103},
			{"market":"KRW-BTC","candle_date_time_utc":"2024-01-02T10:00:00","opening_price":100,"high_price":103,"low_price":99,"trade_price":102}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	candles, err := c.Candles(context.Background(), "KRW-BTC", "minute30", 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, "count=2&market=KRW-BTC", gotQuery)

	// развёрнуто в старые -> новые
	assert.True(t, candles[0].Time.Equal(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, candles[1].Time.Equal(time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)))
	assert.InDelta(t, 102, candles[0].Close, 1e-9)
	assert.InDelta(t, 103, candles[1].Close, 1e-9)
	assert.InDelta(t, 104, candles[1].High, 1e-9)
}

func TestCandles_ShortHistoryStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"market":"KRW-BTC","candle_date_time_utc":"2024-01-02T10:00:00","opening_price":100,"high_price":103,"low_price":99,"trade_price":102}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	candles, err := c.Candles(context.Background(), "KRW-BTC", "minute30", 500)
	require.NoError(t, err)
	assert.Len(t, candles, 1)
	assert.Equal(t, 1, calls, "неполная страница — конец истории")
}

func TestCandles_EmptyHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Candles(context.Background(), "KRW-BTC", "minute30", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candles for KRW-BTC minute30")
}

func TestCandles_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Candles(context.Background(), "KRW-BTC", "minute30", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 429")
}

func TestCandles_UnknownInterval(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	_, err := c.Candles(context.Background(), "KRW-BTC", "week1", 10)
	assert.Error(t, err)
}
