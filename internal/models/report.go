package models

import "time"

// CycleReport — итог одного планового цикла: что насчитали, какая
// была позиция после сделки и чем кончилась сама сделка.
type CycleReport struct {
	Market         string
	Interval       string
	Signal         Side
	Price          float64
	Time           time.Time
	Oscillator     float64
	OscillatorSlow float64
	Position       Position
	TradeResult    string
}
