package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"yingyang_bot/internal/models"
	"yingyang_bot/internal/modules/config"
	healthsvc "yingyang_bot/internal/modules/health/service"
	journal "yingyang_bot/internal/modules/journal/service"
	upbit "yingyang_bot/internal/modules/upbit_client/service"
	"yingyang_bot/pkg/logger"
)

// TelegramNotifier — то, что раннеру нужно от телеграма.
type TelegramNotifier interface {
	SendF(ctx context.Context, format string, args ...any)
	SendReport(ctx context.Context, rep *models.CycleReport)
	Confirm(ctx context.Context, prompt string, timeout time.Duration) bool
}

var (
	ErrCycleRunning = errors.New("cycle already running")
	ErrPaused       = errors.New("trading is paused")
)

// Runner крутит плановые циклы: по границе интервала тянет свечи,
// считает стратегию и торгует по последней строке сводки.
type Runner struct {
	cfg   *config.Config
	upbit *upbit.Client
	store *journal.Store
	state *healthsvc.State
	n     TelegramNotifier

	mu     sync.Mutex // один цикл за раз, /scan поверх планового не лезет
	paused atomic.Bool
	cancel context.CancelFunc
}

func New(
	cfg *config.Config,
	client *upbit.Client,
	store *journal.Store,
	state *healthsvc.State,
) *Runner {
	return &Runner{
		cfg:   cfg,
		upbit: client,
		store: store,
		state: state,
	}
}

// SetNotifier цепляет телеграм после сборки графа, до старта
// расписания. Телеграму нужен раннер для команд, раннеру телеграм
// для отчётов, конструкторами это не разрулить.
func (r *Runner) SetNotifier(n TelegramNotifier) { r.n = n }

// Pause выключает циклы до Resume, расписание продолжает тикать.
func (r *Runner) Pause()  { r.paused.Store(true) }
func (r *Runner) Resume() { r.paused.Store(false) }

func (r *Runner) Paused() bool { return r.paused.Load() }

// RunCycle — плановый запуск: на паузе и поверх живого цикла молча
// пропускаем.
func (r *Runner) RunCycle(ctx context.Context) {
	if r.paused.Load() {
		logger.Debug("[RUNNER] пауза, цикл пропущен")
		healthsvc.CyclesTotal.WithLabelValues("skipped").Inc()
		return
	}
	if !r.mu.TryLock() {
		logger.Warn("[RUNNER] предыдущий цикл ещё идёт, пропускаем")
		healthsvc.CyclesTotal.WithLabelValues("skipped").Inc()
		return
	}
	defer r.mu.Unlock()

	r.runLocked(ctx)
}

// TriggerScan — внеплановый цикл по команде /scan. В отличие от
// планового запуска отказ возвращаем наверх, хэндлер его озвучит.
func (r *Runner) TriggerScan(ctx context.Context) error {
	if r.paused.Load() {
		return ErrPaused
	}
	if !r.mu.TryLock() {
		return ErrCycleRunning
	}
	defer r.mu.Unlock()

	r.runLocked(ctx)
	return nil
}

func (r *Runner) runLocked(ctx context.Context) {
	start := time.Now()

	rep, err := r.cycle(ctx)
	if err != nil {
		healthsvc.CyclesTotal.WithLabelValues("error").Inc()
		r.state.TouchCycle(time.Now(), false)
		logger.Error("[RUNNER] цикл упал: %v", err)
		if r.n != nil {
			r.n.SendF(ctx, "ERROR: %v", err)
		}
		return
	}

	healthsvc.CyclesTotal.WithLabelValues("ok").Inc()
	r.state.TouchCycle(time.Now(), true)
	logger.Info("[RUNNER] цикл %s закончен за %s: %s @ %.0f, позиция %s",
		r.cfg.Market, time.Since(start).Round(time.Millisecond),
		rep.Signal.Label(), rep.Price, rep.Position)

	if r.n != nil {
		r.n.SendReport(ctx, rep)
	}
}
