package service

import (
	"time"

	"github.com/gorilla/websocket"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	healthsvc "yingyang_bot/internal/modules/health/service"
)

// Client — websocket-стример свечей Upbit. Кадры по текущей свече
// идут без флага закрытия, поэтому держим последний кадр и считаем
// свечу закрытой, когда приходит кадр с более поздним началом.
type Client struct {
	cfg   *config.Config
	state *healthsvc.State

	dialer *websocket.Dialer

	pending *models.CandleTick // последний кадр текущей свечи, переживает реконнект
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:    cfg,
		state:  state,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

type subTicket struct {
	Ticket string `json:"ticket"`
}

type subType struct {
	Type  string   `json:"type"`
	Codes []string `json:"codes"`
}

type subFormat struct {
	Format string `json:"format"`
}

// wsCandleFrame — свечной кадр в формате DEFAULT.
type wsCandleFrame struct {
	Type        string  `json:"type"`
	Code        string  `json:"code"`
	DateTimeUTC string  `json:"candle_date_time_utc"`
	Opening     float64 `json:"opening_price"`
	High        float64 `json:"high_price"`
	Low         float64 `json:"low_price"`
	Trade       float64 `json:"trade_price"`
	AccVolume   float64 `json:"candle_acc_trade_volume"`
	TimestampMs int64   `json:"timestamp"`
	StreamType  string  `json:"stream_type"`
}
