package service

import (
	"yingyang_bot/internal/modules/config"
)

func NewEngine(cfg *config.Config) Engine {
	return NewYingYang(cfg.Market, cfg.Interval, cfg.StrategySettings, cfg.CandleCount)
}
