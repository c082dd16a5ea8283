package models

// Position — позиция по рынку, выводится из балансов биржи.
// Строки идут в журнал и отчёт как есть.
type Position string

const (
	PositionLong    Position = "long"
	PositionNeutral Position = "neutral"
)

func (p Position) Long() bool { return p == PositionLong }
