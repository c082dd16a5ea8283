package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики и гейджи процесса. Пакетные переменные: дергаются из хаба,
// раннера и ws-клиента без проводки через fx.
var (
	CyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yingyang",
		Name:      "cycles_total",
		Help:      "Evaluation cycles by result (ok/error/skipped).",
	}, []string{"result"})

	SignalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yingyang",
		Name:      "signals_total",
		Help:      "Signals from scheduled cycles by direction.",
	}, []string{"direction"})

	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yingyang",
		Name:      "orders_total",
		Help:      "Placed market orders by side and result.",
	}, []string{"side", "result"})

	WSCandlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yingyang",
		Name:      "ws_candles_total",
		Help:      "Closed candles received from the websocket stream.",
	})

	Oscillator = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "yingyang",
		Name:      "oscillator",
		Help:      "Last defined YYL value.",
	})

	OscillatorSlow = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "yingyang",
		Name:      "oscillator_slow",
		Help:      "Last defined YYL_slow value.",
	})

	EngineReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "yingyang",
		Name:      "engine_ready",
		Help:      "1 once the streaming engine warmed up.",
	})
)
