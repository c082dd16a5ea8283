package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
)

// Client ходит в публичный REST Upbit. Свечи не требуют подписи,
// поэтому ключей здесь нет вовсе.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

const pageLimit = 200

// Candles забирает count последних свечей, старые -> новые. Биржа
// отдаёт новые -> старые страницами не больше 200, листаем назад
// через параметр to.
func (c *Client) Candles(ctx context.Context, market, interval string, count int) ([]models.Candle, error) {
	unit, err := helper.IntervalUnit(interval)
	if err != nil {
		return nil, err
	}

	var rows []candleRow
	to := ""
	for len(rows) < count {
		batch := count - len(rows)
		if batch > pageLimit {
			batch = pageLimit
		}
		page, err := c.fetchPage(ctx, market, unit, batch, to)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		rows = append(rows, page...)
		if len(page) < batch {
			break
		}
		to = page[len(page)-1].DateTimeUTC + "Z"
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no candles for %s %s", market, interval)
	}

	out := make([]models.Candle, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		ts, err := helper.ParseCandleTime(rows[i].DateTimeUTC)
		if err != nil {
			return nil, fmt.Errorf("bad candle time %q: %w", rows[i].DateTimeUTC, err)
		}
		// стык страниц может дублировать свечу
		if n := len(out); n > 0 && !out[n-1].Time.Before(ts) {
			continue
		}
		out = append(out, models.Candle{
			Time:  ts,
			Open:  rows[i].Opening,
			High:  rows[i].High,
			Low:   rows[i].Low,
			Close: rows[i].Trade,
		})
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, market string, unit, count int, to string) ([]candleRow, error) {
	q := url.Values{}
	q.Set("market", market)
	q.Set("count", strconv.Itoa(count))
	if to != "" {
		q.Set("to", to)
	}
	u := fmt.Sprintf("%s/v1/candles/minutes/%d?%s", c.baseURL, unit, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}
	var page []candleRow
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return page, nil
}

type candleRow struct {
	Market      string  `json:"market"`
	DateTimeUTC string  `json:"candle_date_time_utc"`
	Opening     float64 `json:"opening_price"`
	High        float64 `json:"high_price"`
	Low         float64 `json:"low_price"`
	Trade       float64 `json:"trade_price"`
}
