package models

import "time"

// Value — ячейка фрейма: число и признак «определено». Неопределённые
// позиции (прогрев окна, деление 0/0) ходят по пайплайну как OK=false,
// NaN наружу не выпускаем.
type Value struct {
	V  float64
	OK bool
}

func Def(v float64) Value { return Value{V: v, OK: true} }

var Undef = Value{}

// Get — (value, ok) доступ, удобен в проверках.
func (v Value) Get() (float64, bool) { return v.V, v.OK }

type VolatilityRow struct {
	Time           time.Time
	Baseline       Value
	YangVol        Value
	YingVol        Value
	TotalVol       Value
	Oscillator     Value // YYL
	OscillatorSlow Value // YYL_slow
}

// VolatilityFrame выровнен по индексу исходной серии: Rows[i]
// соответствует i-й свече.
type VolatilityFrame struct {
	Rows []VolatilityRow
}

func (f *VolatilityFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

type BandRow struct {
	Time     time.Time
	Baseline Value // быстрая EMA(span), от неё строятся полосы
	Upper    Value
	Lower    Value
	MidUp    Value
	MidDown  Value
}

type BandFrame struct {
	Rows []BandRow
}

func (f *BandFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// SignalEvent — решение на конкретной свече. Не больше одного
// направления на метку; цены заполнены только у своей стороны.
type SignalEvent struct {
	Time       time.Time
	Side       Side
	EntryPrice float64 // только при Buy
	ExitPrice  float64 // только при Sell
}

// Summary — последняя полностью определённая строка сведённой таблицы.
type Summary struct {
	Market         string
	Interval       string
	Side           Side
	Time           time.Time
	Price          float64 // close на строке summary
	Oscillator     float64
	OscillatorSlow float64
}
