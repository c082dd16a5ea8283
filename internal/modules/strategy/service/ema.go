package service

import "yingyang_bot/internal/models"

// emaSeries — EMA по ряду close, альфа 2/(period+1), сид — первое
// значение ряда (никакого SMA-сида: важно совпадение с тем, как
// ewm(adjust=false) считает рекурсию с первой точки).
func emaSeries(values []float64, period int) []models.Value {
	if period <= 1 {
		period = 1
	}
	alpha := 2.0 / (float64(period) + 1)

	out := make([]models.Value, len(values))
	var ema float64
	for i, v := range values {
		if i == 0 {
			ema = v
		} else {
			ema = alpha*v + (1-alpha)*ema
		}
		out[i] = models.Def(ema)
	}
	return out
}

// smaSeries — скользящее среднее по окну period; первые period-1
// позиций не определены.
func smaSeries(values []float64, period int) []models.Value {
	if period < 1 {
		period = 1
	}
	out := make([]models.Value, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = models.Def(sum / float64(period))
		}
	}
	return out
}

// rollingMean — среднее по окну window над рядом с дырками.
// Любая неопределённая точка внутри окна делает результат
// неопределённым (как rolling().mean() поверх NaN).
func rollingMean(values []models.Value, window int) []models.Value {
	if window < 1 {
		window = 1
	}
	out := make([]models.Value, len(values))
	var sum float64
	defined := 0
	for i, v := range values {
		if v.OK {
			sum += v.V
			defined++
		}
		if i >= window {
			if prev := values[i-window]; prev.OK {
				sum -= prev.V
				defined--
			}
		}
		if i >= window-1 && defined == window {
			out[i] = models.Def(sum / float64(window))
		}
	}
	return out
}
