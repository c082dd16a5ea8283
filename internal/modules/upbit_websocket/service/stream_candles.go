package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"yingyang_bot/internal/helper"
	"yingyang_bot/internal/models"
	healthsvc "yingyang_bot/internal/modules/health/service"
	"yingyang_bot/pkg/logger"
)

// Start стримит закрытые свечи в out до отмены контекста. Один
// сокет на рынок; упавшее соединение переподнимаем через секунду.
func (c *Client) Start(ctx context.Context, out chan<- models.CandleTick) {
	candleType, err := helper.WSCandleType(c.cfg.Interval)
	if err != nil {
		logger.Error("[WS] интервал %q не стримится: %v", c.cfg.Interval, err)
		return
	}
	step, _ := helper.IntervalDuration(c.cfg.Interval)

	logger.Info("[WS] ▶️ стрим %s %s", c.cfg.Market, candleType)
	for {
		if err := c.runConn(ctx, candleType, step, out); err != nil {
			logger.Warn("[WS] соединение закрыто: %v", err)
		}

		select {
		case <-ctx.Done():
			logger.Info("[WS] ⏹ стрим остановлен")
			return
		default:
			time.Sleep(time.Second)
		}
	}
}

// runConn — жизнь одного соединения: dial, подписка, read-loop.
func (c *Client) runConn(ctx context.Context, candleType string, step time.Duration, out chan<- models.CandleTick) error {
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.Upbit.WsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer c.state.SetWSConnected(false)

	sub := []any{
		subTicket{Ticket: uuid.NewString()},
		subType{Type: candleType, Codes: []string{c.cfg.Market}},
		subFormat{Format: "DEFAULT"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}
	c.state.SetWSConnected(true)
	logger.Info("[WS] подписка %s %s оформлена", c.cfg.Market, candleType)

	// keepalive ping каждые 20s, иначе биржа рвёт соединение по
	// простою; на отмене контекста закрываем сокет, чтобы отпустить
	// ReadMessage.
	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		t := time.NewTicker(20 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-stopPing:
				return
			case <-t.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame wsCandleFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Type != candleType || frame.Code != c.cfg.Market {
			continue
		}
		start, err := helper.ParseCandleTime(frame.DateTimeUTC)
		if err != nil {
			continue
		}

		c.state.TouchTick(time.Now())

		tick := models.CandleTick{
			Market:   frame.Code,
			Interval: c.cfg.Interval,
			Open:     frame.Opening,
			High:     frame.High,
			Low:      frame.Low,
			Close:    frame.Trade,
			Volume:   frame.AccVolume,
			Start:    start,
			End:      start.Add(step),
		}

		closed, ok := c.roll(tick)
		if !ok {
			continue
		}
		healthsvc.WSCandlesTotal.Inc()
		logger.Debug("[WS] закрыта свеча %s %s close=%.0f",
			closed.Market, closed.Start.Format("15:04"), closed.Close)

		select {
		case out <- closed:
		case <-ctx.Done():
			return nil
		}
	}
}

// roll подменяет кадр текущей свечи и отдаёт предыдущую, когда
// началась новая. Поздние кадры уже закрытых свечей игнорируем.
func (c *Client) roll(tick models.CandleTick) (models.CandleTick, bool) {
	if c.pending == nil || tick.Start.Equal(c.pending.Start) {
		c.pending = &tick
		return models.CandleTick{}, false
	}
	if tick.Start.Before(c.pending.Start) {
		return models.CandleTick{}, false
	}

	closed := *c.pending
	c.pending = &tick
	return closed, true
}
