package models

import "time"

// JournalEntry — строка журнала: срез одного планового цикла.
type JournalEntry struct {
	ID             int64
	Ticker         string
	Interval       string
	Signal         string
	SignalTime     time.Time
	Price          float64
	Oscillator     float64
	OscillatorSlow float64
	Position       Position
	CreatedAt      time.Time
}
