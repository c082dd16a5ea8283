package runner

import (
	"context"
	"time"

	"yingyang_bot/internal/helper"
	"yingyang_bot/pkg/logger"
)

// NextRun — ближайшая граница шага строго после now. Для шага 30m
// это ближайшие :00 или :30.
func NextRun(now time.Time, step time.Duration) time.Time {
	return now.Truncate(step).Add(step)
}

// Start блокируется до отмены контекста: спим до границы интервала,
// гоняем цикл, снова спим. Немедленного первого прогона нет, первая
// оценка строго по расписанию.
func (r *Runner) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel

	step, err := helper.IntervalDuration(r.cfg.Interval)
	if err != nil {
		logger.Error("[RUNNER] интервал %q не распознан: %v", r.cfg.Interval, err)
		return
	}

	next := NextRun(time.Now(), step)
	logger.Info("[RUNNER] ▶️ старт расписания: %s %s, шаг %s, первый цикл в %s",
		r.cfg.Market, r.cfg.Interval, step, next.Format("15:04:05"))

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[RUNNER] ⏹ расписание остановлено")
			return
		case <-timer.C:
			r.RunCycle(ctx)
			timer.Reset(time.Until(NextRun(time.Now(), step)))
		}
	}
}

// Stop мягко гасит планировщик.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}
