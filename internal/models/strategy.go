package models

import "time"

type StrategyType string

const (
	StrategyYingYang StrategyType = "yingyang"
)

// Side — направление сигнала. Строки ровно те, что уходят в журнал
// и в отчёт, поэтому не "BUY"/"SELL".
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Label — подпись для журнала/телеграма, пустой стороны нет.
func (s Side) Label() string {
	if s == SideNone {
		return "No Signal"
	}
	return string(s)
}

// StrategySettings — параметры индикатора, передаются явно,
// движок сам в конфиг не лазит.
type StrategySettings struct {
	UseEMA bool
	Window int
	Span   int
}

// Signal — стриминговый сигнал из хаба (для лога и метрик,
// торгует только плановый цикл).
type Signal struct {
	Market   string
	Interval string
	Side     Side
	Price    float64
	Time     time.Time
	Strategy StrategyType
	Reason   string
}
