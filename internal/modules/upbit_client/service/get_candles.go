package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
)

// за один запрос биржа отдаёт максимум 200 свечей
const maxCandlesPerRequest = 200

// GetCandles тянет count минутных свечей и возвращает их по
// возрастанию времени. Страницы листаем назад через to=<самая старая
// свеча страницы> (параметр эксклюзивный, дублей на стыке нет).
func (c *Client) GetCandles(ctx context.Context, market, interval string, count int) ([]models.Candle, error) {
	unit, err := helper.IntervalUnit(interval)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = maxCandlesPerRequest
	}

	// собираем newest-first, разворачиваем в конце
	rows := make([]candleRow, 0, count)
	to := ""
	for len(rows) < count {
		batch := count - len(rows)
		if batch > maxCandlesPerRequest {
			batch = maxCandlesPerRequest
		}

		u := fmt.Sprintf("%s/v1/candles/minutes/%d?market=%s&count=%d",
			c.baseURL, unit, url.QueryEscape(market), batch)
		if to != "" {
			u += "&to=" + url.QueryEscape(to)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, errors.Wrap(err, "GetCandles build request")
		}
		data, err := c.do(req)
		if err != nil {
			return nil, errors.Wrapf(ErrDataUnavailable, "GetCandles %s: %v", market, err)
		}

		var page []candleRow
		if err := sonic.Unmarshal(data, &page); err != nil {
			return nil, errors.Wrap(err, "GetCandles decode")
		}
		if len(page) == 0 {
			break
		}
		rows = append(rows, page...)

		// самая старая в странице — курсор следующей
		to = page[len(page)-1].DateTimeUTC + "Z"
		if len(page) < batch {
			break // история кончилась раньше
		}
	}

	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrDataUnavailable, "GetCandles %s: empty response", market)
	}

	out := make([]models.Candle, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		ts, err := helper.ParseCandleTime(row.DateTimeUTC)
		if err != nil {
			return nil, errors.Wrapf(err, "GetCandles bad time %q", row.DateTimeUTC)
		}
		if n := len(out); n > 0 && !out[n-1].Time.Before(ts) {
			continue // дубль на стыке страниц, пропускаем
		}
		out = append(out, models.Candle{
			Time:   ts,
			Open:   row.Opening,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Trade,
			Volume: row.AccVolume,
		})
	}
	return out, nil
}
