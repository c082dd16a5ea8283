package models

import "time"

// Candle — одна свеча из REST-истории. Серия всегда отсортирована
// по возрастанию времени, метки уникальны.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleTick — закрытая свеча из websocket-стрима.
type CandleTick struct {
	Market   string
	Interval string
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Start    time.Time
	End      time.Time
}

func (t CandleTick) Candle() Candle {
	return Candle{
		Time:   t.Start,
		Open:   t.Open,
		High:   t.High,
		Low:    t.Low,
		Close:  t.Close,
		Volume: t.Volume,
	}
}
