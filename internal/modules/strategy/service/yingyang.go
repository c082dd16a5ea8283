package service

import (
	"errors"
	"math"

	"yingyang_bot/internal/models"
)

// Ошибки пайплайна. Раннер различает их через errors.Is и решает,
// что слать в алерт; сам пайплайн ничего не логирует и не ретраит.
var (
	ErrInsufficientData = errors.New("insufficient data: empty price series")
	ErrPrecondition     = errors.New("precondition failed: upstream frame missing or misaligned")
	ErrEmptyResult      = errors.New("empty result: no fully defined rows")
)

// Volatility раскладывает отклонение close от базлайна на верхнюю
// ("ян") и нижнюю ("инь") волатильность и строит осциллятор YYL.
// Короткая серия — не ошибка: непрогретые позиции выходят как
// неопределённые ячейки. Чистая функция от входа и настроек.
func Volatility(candles []models.Candle, s models.StrategySettings) (*models.VolatilityFrame, error) {
	if len(candles) == 0 {
		return nil, ErrInsufficientData
	}
	if s.Window <= 0 || s.Span <= 0 {
		return nil, ErrPrecondition
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	var baseline []models.Value
	if s.UseEMA {
		baseline = emaSeries(closes, s.Window)
	} else {
		baseline = smaSeries(closes, s.Window)
	}

	// квадраты отклонений, отдельно вверх и вниз; там, где базлайн
	// ещё не определён, дырка едет дальше по окнам
	posSq := make([]models.Value, len(closes))
	negSq := make([]models.Value, len(closes))
	for i, px := range closes {
		b := baseline[i]
		if !b.OK {
			continue
		}
		d := px - b.V
		if d > 0 {
			posSq[i] = models.Def(d * d)
			negSq[i] = models.Def(0)
		} else {
			posSq[i] = models.Def(0)
			negSq[i] = models.Def(d * d)
		}
	}

	yang := sqrtValues(rollingMean(posSq, s.Window))
	ying := sqrtValues(rollingMean(negSq, s.Window))

	osc := make([]models.Value, len(closes))
	total := make([]models.Value, len(closes))
	for i := range closes {
		ya, yi := yang[i], ying[i]
		if !ya.OK || !yi.OK {
			continue
		}
		t := math.Sqrt(ya.V*ya.V + yi.V*yi.V)
		total[i] = models.Def(t)
		if t == 0 {
			// плоский участок: 0/0, осциллятор не определён
			continue
		}
		osc[i] = models.Def((ya.V - yi.V) / t * 100)
	}

	oscSlow := rollingMean(osc, s.Span)

	rows := make([]models.VolatilityRow, len(candles))
	for i, c := range candles {
		rows[i] = models.VolatilityRow{
			Time:           c.Time,
			Baseline:       baseline[i],
			YangVol:        yang[i],
			YingVol:        ying[i],
			TotalVol:       total[i],
			Oscillator:     osc[i],
			OscillatorSlow: oscSlow[i],
		}
	}
	return &models.VolatilityFrame{Rows: rows}, nil
}

// Bands строит ценовые полосы от быстрой EMA(span): верх — плюс два
// ян-отклонения, низ — минус два инь.
func Bands(candles []models.Candle, vol *models.VolatilityFrame, s models.StrategySettings) (*models.BandFrame, error) {
	if err := checkVolAligned(candles, vol); err != nil {
		return nil, err
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	fast := emaSeries(closes, s.Span)

	rows := make([]models.BandRow, len(candles))
	for i, c := range candles {
		row := models.BandRow{Time: c.Time, Baseline: fast[i]}
		vr := vol.Rows[i]
		if fast[i].OK && vr.YangVol.OK && vr.YingVol.OK {
			up := fast[i].V + 2*vr.YangVol.V
			low := fast[i].V - 2*vr.YingVol.V
			row.Upper = models.Def(up)
			row.Lower = models.Def(low)
			row.MidUp = models.Def((fast[i].V + up) / 2)
			row.MidDown = models.Def((fast[i].V + low) / 2)
		}
		rows[i] = row
	}
	return &models.BandFrame{Rows: rows}, nil
}

func sqrtValues(in []models.Value) []models.Value {
	out := make([]models.Value, len(in))
	for i, v := range in {
		if v.OK {
			out[i] = models.Def(math.Sqrt(v.V))
		}
	}
	return out
}

func checkVolAligned(candles []models.Candle, vol *models.VolatilityFrame) error {
	if vol == nil || vol.Len() != len(candles) {
		return ErrPrecondition
	}
	for i, c := range candles {
		if !vol.Rows[i].Time.Equal(c.Time) {
			return ErrPrecondition
		}
	}
	return nil
}
