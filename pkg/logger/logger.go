package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.Logger

var (
	serviceName = "default"
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init собирает глобальный логгер. Уровень берём из LOG_LEVEL,
// по умолчанию info.
func Init() error {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.Set(strings.ToLower(raw)); err != nil {
			return fmt.Errorf("bad LOG_LEVEL %q: %w", raw, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	base = l
	return nil
}

func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func get() *zap.Logger {
	if base == nil {
		// до Init — чтобы ранние ошибки не терялись молча
		if err := Init(); err != nil {
			panic(err)
		}
	}
	return base.With(zap.String("service", serviceName))
}

func Debug(format string, args ...interface{}) {
	get().Debug(fmt.Sprintf(format, args...))
}

func Info(format string, args ...interface{}) {
	get().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	get().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	get().Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	get().Fatal(fmt.Sprintf(format, args...))
}
