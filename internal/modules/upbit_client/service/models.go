package service

import (
	"strconv"

	"github.com/bytedance/sonic"
)

// Апбит почти все числа отдаёт строками.

type candleRow struct {
	Market      string  `json:"market"`
	DateTimeUTC string  `json:"candle_date_time_utc"`
	Opening     float64 `json:"opening_price"`
	High        float64 `json:"high_price"`
	Low         float64 `json:"low_price"`
	Trade       float64 `json:"trade_price"`
	AccVolume   float64 `json:"candle_acc_trade_volume"`
	TimestampMs int64   `json:"timestamp"`
	Unit        int     `json:"unit"`
}

type accountRow struct {
	Currency    string `json:"currency"`
	Balance     string `json:"balance"`
	Locked      string `json:"locked"`
	AvgBuyPrice string `json:"avg_buy_price"`
}

type orderRow struct {
	UUID      string `json:"uuid"`
	Market    string `json:"market"`
	Side      string `json:"side"`
	OrdType   string `json:"ord_type"`
	Price     string `json:"price"`
	Volume    string `json:"volume"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

type apiError struct {
	Error struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseAPIError(data []byte) (name, message string, ok bool) {
	var e apiError
	if err := sonic.Unmarshal(data, &e); err != nil {
		return "", "", false
	}
	if e.Error.Name == "" && e.Error.Message == "" {
		return "", "", false
	}
	return e.Error.Name, e.Error.Message, true
}

func parseF(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
