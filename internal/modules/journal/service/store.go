package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"yingyang_bot/internal/models"
	"yingyang_bot/pkg/db"
)

// SchemaSQL — DDL журнала. Идемпотентный: его же гоняет Init на
// старте бота и cmd/migrate как миграцию.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS signal_journal (
    id          BIGSERIAL PRIMARY KEY,
    ticker      TEXT             NOT NULL,
    "interval"  TEXT             NOT NULL,
    signal      TEXT             NOT NULL,
    signal_time TIMESTAMPTZ      NOT NULL,
    price       DOUBLE PRECISION NOT NULL,
    yyl         DOUBLE PRECISION NOT NULL,
    yyl_slow    DOUBLE PRECISION NOT NULL,
    "position"  TEXT             NOT NULL,
    raw         JSONB,
    created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS signal_journal_ticker_time_idx
    ON signal_journal (ticker, signal_time DESC);
`

// Store пишет результат каждого цикла в signal_journal.
type Store struct {
	db db.TxManager
}

func NewStore(db db.TxManager) *Store {
	return &Store{db: db}
}

// Init создаёт таблицу журнала, вызывается на старте приложения.
func (s *Store) Init(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Store.Init: %w", err)
		}
	}()
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctxTx, SchemaSQL)
		return err
	})
}

// Insert добавляет запись цикла; в raw уходит полная сводка.
func (s *Store) Insert(ctx context.Context, e *models.JournalEntry, summary *models.Summary) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Store.Insert: %w", err)
		}
	}()

	var raw []byte
	if summary != nil {
		raw, err = sonic.Marshal(summary)
		if err != nil {
			return err
		}
	}
	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO signal_journal
				(ticker, "interval", signal, signal_time, price, yyl, yyl_slow, "position", raw)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.Ticker, e.Interval, e.Signal, e.SignalTime, e.Price,
			e.Oscillator, e.OscillatorSlow, string(e.Position), raw,
		)
		return err
	})
}

// Last возвращает свежие записи по рынку, новые первыми.
func (s *Store) Last(ctx context.Context, ticker string, limit int) (out []models.JournalEntry, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Store.Last: %w", err)
		}
	}()
	if limit <= 0 {
		limit = 5
	}
	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		rows, err := tx.Query(ctxTx, `
			SELECT id, ticker, "interval", signal, signal_time, price, yyl, yyl_slow, "position", created_at
			FROM signal_journal
			WHERE ticker = $1
			ORDER BY id DESC
			LIMIT $2`, ticker, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e models.JournalEntry
			var pos string
			if err := rows.Scan(&e.ID, &e.Ticker, &e.Interval, &e.Signal, &e.SignalTime,
				&e.Price, &e.Oscillator, &e.OscillatorSlow, &pos, &e.CreatedAt); err != nil {
				return err
			}
			e.Position = models.Position(pos)
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
