package service

import (
	"yingyang_bot/internal/models"
)

// Пороги экстремума: флип статуса засчитывается сигналом только когда
// осциллятор уже за ±75 своей ±100 шкалы. Правило переносим дословно,
// включая строгие неравенства и набор дельт.
const (
	buyThreshold  = -75.0
	sellThreshold = 75.0
)

// status: +1 когда YYL выше медленной линии, -1 когда ниже, 0 при
// равенстве или если хотя бы одно значение не определено (сравнение
// с дыркой — всегда false, обе ветки).
func status(row models.VolatilityRow) int {
	o, okO := row.Oscillator.Get()
	s, okS := row.OscillatorSlow.Get()
	if !okO || !okS {
		return 0
	}
	switch {
	case o > s:
		return 1
	case o < s:
		return -1
	default:
		return 0
	}
}

// Signals проходит по парам соседних статусов и отдаёт по событию на
// каждую свечу. На нулевом индексе сигнала не бывает: сравнивать не
// с чем.
func Signals(candles []models.Candle, vol *models.VolatilityFrame, bands *models.BandFrame) ([]models.SignalEvent, error) {
	if err := checkVolAligned(candles, vol); err != nil {
		return nil, err
	}
	if bands == nil || bands.Len() != len(candles) {
		return nil, ErrPrecondition
	}

	events := make([]models.SignalEvent, len(candles))
	prev := 0
	for i := range candles {
		events[i] = models.SignalEvent{Time: candles[i].Time}
		cur := status(vol.Rows[i])
		if i == 0 {
			prev = cur
			continue
		}

		delta := cur - prev
		prev = cur

		osc, ok := vol.Rows[i].Oscillator.Get()
		if !ok {
			continue
		}
		switch {
		case (delta == 1 || delta == 2) && osc < buyThreshold:
			events[i].Side = models.SideBuy
			events[i].EntryPrice = candles[i].Close
		case (delta == -1 || delta == -2) && osc > sellThreshold:
			events[i].Side = models.SideSell
			events[i].ExitPrice = candles[i].Close
		}
	}
	return events, nil
}

// Summarize сводит цену, волатильность, полосы и сигналы, выкидывает
// строки с любой неопределённой ячейкой и возвращает последнюю
// выжившую. Пустая сводка — ErrEmptyResult (серия не прогрелась или
// рынок стоял так, что осциллятор нигде не определён).
func Summarize(market, interval string, candles []models.Candle, vol *models.VolatilityFrame, bands *models.BandFrame, events []models.SignalEvent) (*models.Summary, error) {
	if err := checkVolAligned(candles, vol); err != nil {
		return nil, err
	}
	if bands == nil || bands.Len() != len(candles) || len(events) != len(candles) {
		return nil, ErrPrecondition
	}

	for i := len(candles) - 1; i >= 0; i-- {
		if !rowDefined(vol.Rows[i], bands.Rows[i]) {
			continue
		}
		return &models.Summary{
			Market:         market,
			Interval:       interval,
			Side:           events[i].Side,
			Time:           candles[i].Time,
			Price:          candles[i].Close,
			Oscillator:     vol.Rows[i].Oscillator.V,
			OscillatorSlow: vol.Rows[i].OscillatorSlow.V,
		}, nil
	}
	return nil, ErrEmptyResult
}

func rowDefined(v models.VolatilityRow, b models.BandRow) bool {
	return v.Baseline.OK && v.YangVol.OK && v.YingVol.OK && v.TotalVol.OK &&
		v.Oscillator.OK && v.OscillatorSlow.OK &&
		b.Baseline.OK && b.Upper.OK && b.Lower.OK && b.MidUp.OK && b.MidDown.OK
}

// Evaluation — все артефакты одного прогона; раннеру нужна Summary,
// отчёту и /status — последние значения фреймов.
type Evaluation struct {
	Market   string
	Interval string
	Candles  []models.Candle
	Vol      *models.VolatilityFrame
	Bands    *models.BandFrame
	Events   []models.SignalEvent
	Summary  *models.Summary
}

// Evaluate — единая точка входа: четыре стадии по порядку, без
// частичных результатов.
func Evaluate(market, interval string, candles []models.Candle, s models.StrategySettings) (*Evaluation, error) {
	vol, err := Volatility(candles, s)
	if err != nil {
		return nil, err
	}
	bands, err := Bands(candles, vol, s)
	if err != nil {
		return nil, err
	}
	events, err := Signals(candles, vol, bands)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(market, interval, candles, vol, bands, events)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		Market:   market,
		Interval: interval,
		Candles:  candles,
		Vol:      vol,
		Bands:    bands,
		Events:   events,
		Summary:  summary,
	}, nil
}
