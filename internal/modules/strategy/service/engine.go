package service

import (
	"fmt"
	"sync"
	"time"

	"yingyang_bot/internal/models"
)

// YingYang — стриминговая обёртка над батч-пайплайном: держит
// скользящий буфер свечей и пересчитывает фреймы на каждом закрытии.
// На наших размерах (сотни свечей) полный пересчёт дешевле, чем
// держать два пути вычислений.
type YingYang struct {
	market   string
	interval string
	settings models.StrategySettings
	capacity int

	mu    sync.Mutex
	buf   []models.Candle
	ready bool
	last  *Evaluation

	// антиспам: одна свеча — максимум один сигнал
	lastSignalStart time.Time
}

func NewYingYang(market, interval string, settings models.StrategySettings, capacity int) *YingYang {
	if capacity < settings.Window+settings.Span {
		capacity = settings.Window + settings.Span
	}
	return &YingYang{
		market:   market,
		interval: interval,
		settings: settings,
		capacity: capacity,
		buf:      make([]models.Candle, 0, capacity),
	}
}

func (e *YingYang) Name() string { return string(models.StrategyYingYang) }

func (e *YingYang) OnCandle(t models.CandleTick) (models.Signal, bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t.Market != e.market || t.Close <= 0 {
		return models.Signal{}, false, false
	}

	c := t.Candle()
	switch {
	case len(e.buf) == 0 || c.Time.After(e.buf[len(e.buf)-1].Time):
		e.buf = append(e.buf, c)
		if len(e.buf) > e.capacity {
			e.buf = e.buf[1:]
		}
	case c.Time.Equal(e.buf[len(e.buf)-1].Time):
		// повтор последней свечи после реконнекта — перезаписываем
		e.buf[len(e.buf)-1] = c
	default:
		// свеча из прошлого, буфер уже ушёл дальше
		return models.Signal{}, false, false
	}

	ev, err := Evaluate(e.market, e.interval, e.buf, e.settings)
	if err != nil {
		// короткий буфер: ещё греемся
		return models.Signal{}, false, false
	}

	becameReady := !e.ready
	e.ready = true
	e.last = ev

	lastEvent := ev.Events[len(ev.Events)-1]
	if lastEvent.Side == models.SideNone {
		return models.Signal{}, false, becameReady
	}
	if !t.Start.IsZero() && e.lastSignalStart.Equal(t.Start) {
		return models.Signal{}, false, becameReady
	}
	e.lastSignalStart = t.Start

	sig := models.Signal{
		Market:   e.market,
		Interval: e.interval,
		Side:     lastEvent.Side,
		Price:    c.Close,
		Time:     c.Time,
		Strategy: models.StrategyYingYang,
		Reason: fmt.Sprintf("YYL=%.2f slow=%.2f",
			ev.Summary.Oscillator, ev.Summary.OscillatorSlow),
	}
	return sig, true, becameReady
}

func (e *YingYang) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *YingYang) Last() *Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

func (e *YingYang) Dump() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last == nil || e.last.Summary == nil {
		return fmt.Sprintf("%s %s: warmup %d/%d", e.market, e.interval, len(e.buf), e.settings.Window+e.settings.Span)
	}
	s := e.last.Summary
	return fmt.Sprintf("%s %s: YYL=%.2f slow=%.2f close=%.0f signal=%s",
		e.market, e.interval, s.Oscillator, s.OscillatorSlow, s.Price, s.Side.Label())
}
