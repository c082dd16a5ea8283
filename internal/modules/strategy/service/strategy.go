package service

import "yingyang_bot/internal/models"

type Engine interface {
	// ok==true когда на закрывшейся свече появился сигнал
	// becameReady==true когда движок впервые прогрелся
	OnCandle(t models.CandleTick) (sig models.Signal, ok bool, becameReady bool)

	IsReady() bool
	Dump() string
	Name() string

	// Last — артефакты последнего прогона, nil пока движок не готов.
	Last() *Evaluation
}
