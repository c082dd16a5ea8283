package service

import (
	"context"
	"sync"

	"yingyang_bot/internal/models"
	healthsvc "yingyang_bot/internal/modules/health/service"
	"yingyang_bot/pkg/logger"
)

type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}

// Hub принимает закрытые свечи (ws и REST-прогрев), кормит движок и
// раздаёт побочные эффекты: готовность, гейджи, сервисные сообщения.
// Стриминговые сигналы только логируются — торгует плановый цикл.
type Hub struct {
	n      ServiceNotifier
	engine Engine
	state  *healthsvc.State

	mu            sync.Mutex
	warmupMsgSent bool
}

func NewHub(engine Engine, state *healthsvc.State) *Hub {
	return &Hub{
		engine: engine,
		state:  state,
	}
}

// SetNotifier цепляет телеграм после сборки графа, до старта хаба.
// Разрывает цикл конструкторов: телеграму нужен движок, хабу телеграм.
func (h *Hub) SetNotifier(n ServiceNotifier) { h.n = n }

func (h *Hub) OnTick(ctx context.Context, t models.CandleTick) {
	sig, ok, becameReady := h.engine.OnCandle(t)

	if becameReady {
		h.onBecameReady(ctx)
	}

	if last := h.engine.Last(); last != nil && last.Summary != nil {
		healthsvc.Oscillator.Set(last.Summary.Oscillator)
		healthsvc.OscillatorSlow.Set(last.Summary.OscillatorSlow)
	}

	if !ok {
		return
	}
	logger.Info("[STRAT] streaming signal %s %s @ %.0f (%s)", sig.Market, sig.Side, sig.Price, sig.Reason)
	if h.n != nil {
		h.n.SendService(ctx, "💡 Стрим: %s *%s* @ %.0f\n%s\n_Торгует плановый цикл._",
			sig.Market, sig.Side, sig.Price, sig.Reason)
	}
}

func (h *Hub) onBecameReady(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.warmupMsgSent {
		return
	}
	h.warmupMsgSent = true

	h.state.SetReady(true)
	healthsvc.EngineReady.Set(1)

	logger.Info("[STRAT] engine %s ready: %s", h.engine.Name(), h.engine.Dump())
	if h.n != nil {
		h.n.SendService(ctx, "✅ Прогрев завершён (%s). %s", h.engine.Name(), h.engine.Dump())
	}
}

// Engine — доступ для /status и /scan.
func (h *Hub) Engine() Engine { return h.engine }
