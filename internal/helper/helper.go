package helper

import (
	"fmt"
	"strings"
	"time"
)

// intervalUnits — апбитовские минутные интервалы (имя из REST API ->
// минуты). Дневные/недельные не поддерживаем: планировщик живёт на
// минутных границах.
var intervalUnits = map[string]int{
	"minute1":   1,
	"minute3":   3,
	"minute5":   5,
	"minute10":  10,
	"minute15":  15,
	"minute30":  30,
	"minute60":  60,
	"minute240": 240,
}

// IntervalUnit — минутная единица интервала для REST-путей.
func IntervalUnit(interval string) (int, error) {
	u, ok := intervalUnits[strings.TrimSpace(strings.ToLower(interval))]
	if !ok {
		return 0, fmt.Errorf("unsupported interval %q (want minute1..minute240)", interval)
	}
	return u, nil
}

// IntervalDuration — шаг интервала как time.Duration.
func IntervalDuration(interval string) (time.Duration, error) {
	u, err := IntervalUnit(interval)
	if err != nil {
		return 0, err
	}
	return time.Duration(u) * time.Minute, nil
}

// WSCandleType — тип подписки в websocket-протоколе ("candle.30m").
func WSCandleType(interval string) (string, error) {
	u, err := IntervalUnit(interval)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("candle.%dm", u), nil
}

// IntervalLabel — человекочитаемо для телеграма: "30m".
func IntervalLabel(interval string) string {
	if u, err := IntervalUnit(interval); err == nil {
		return fmt.Sprintf("%dm", u)
	}
	return interval
}

// candleTimeLayout: биржа шлёт время свечи без зоны, зона всегда UTC.
const candleTimeLayout = "2006-01-02T15:04:05"

// ParseCandleTime — "2024-01-02T10:30:00" из REST и ws кадров.
func ParseCandleTime(s string) (time.Time, error) {
	return time.ParseInLocation(candleTimeLayout, s, time.UTC)
}

// BaseCurrency — из "KRW-BTC" достаёт "BTC" (баланс позиции).
func BaseCurrency(market string) string {
	if i := strings.IndexByte(market, '-'); i >= 0 && i < len(market)-1 {
		return market[i+1:]
	}
	return market
}

// QuoteCurrency — из "KRW-BTC" достаёт "KRW" (валюта покупки).
func QuoteCurrency(market string) string {
	if i := strings.IndexByte(market, '-'); i > 0 {
		return market[:i]
	}
	return ""
}
