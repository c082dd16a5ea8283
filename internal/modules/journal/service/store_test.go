package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yingyang_bot/internal/models"
	"yingyang_bot/pkg/db"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx записывает Exec-вызовы; Query/QueryRow журналу в этих тестах
// не нужны.
type fakeTx struct {
	calls   []execCall
	execErr error
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeTx) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("Query is not wired in this fake")
}

func (f *fakeTx) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

type fakeTxManager struct {
	tx fakeTx
}

func (m *fakeTxManager) RunMaster(ctx context.Context, fn func(context.Context, db.Transaction) error) error {
	return fn(ctx, &m.tx)
}

func (m *fakeTxManager) RunRepeatableRead(ctx context.Context, fn func(context.Context, db.Transaction) error) error {
	return fn(ctx, &m.tx)
}

func TestStore_InitRunsSchema(t *testing.T) {
	m := &fakeTxManager{}
	store := NewStore(m)

	require.NoError(t, store.Init(context.Background()))
	require.Len(t, m.tx.calls, 1)
	assert.Equal(t, SchemaSQL, m.tx.calls[0].sql)
	assert.Contains(t, SchemaSQL, "CREATE TABLE IF NOT EXISTS signal_journal")
	assert.Contains(t, SchemaSQL, `"position"`, "зарезервированные имена в кавычках")
}

func TestStore_InsertBindsAllColumns(t *testing.T) {
	m := &fakeTxManager{}
	store := NewStore(m)

	ts := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	entry := &models.JournalEntry{
		Ticker:         "KRW-BTC",
		Interval:       "minute30",
		Signal:         "Buy",
		SignalTime:     ts,
		Price:          71,
		Oscillator:     -89.55,
		OscillatorSlow: -94.78,
		Position:       models.PositionLong,
	}
	summary := &models.Summary{
		Market:   "KRW-BTC",
		Interval: "minute30",
		Side:     models.SideBuy,
		Time:     ts,
		Price:    71,
	}

	require.NoError(t, store.Insert(context.Background(), entry, summary))
	require.Len(t, m.tx.calls, 1)

	call := m.tx.calls[0]
	assert.Contains(t, call.sql, "INSERT INTO signal_journal")
	require.Len(t, call.args, 9)
	assert.Equal(t, "KRW-BTC", call.args[0])
	assert.Equal(t, "minute30", call.args[1])
	assert.Equal(t, "Buy", call.args[2])
	assert.Equal(t, ts, call.args[3])
	assert.Equal(t, 71.0, call.args[4])
	assert.Equal(t, -89.55, call.args[5])
	assert.Equal(t, -94.78, call.args[6])
	assert.Equal(t, "long", call.args[7], "в колонку идёт строка, не тип")

	raw, ok := call.args[8].([]byte)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"Market":"KRW-BTC"`)
	assert.Contains(t, string(raw), `"Side":"Buy"`)
}

func TestStore_InsertWithoutSummary(t *testing.T) {
	m := &fakeTxManager{}
	store := NewStore(m)

	entry := &models.JournalEntry{Ticker: "KRW-BTC", Interval: "minute30", Signal: "No Signal"}
	require.NoError(t, store.Insert(context.Background(), entry, nil))

	require.Len(t, m.tx.calls, 1)
	assert.Nil(t, m.tx.calls[0].args[8], "raw пустой без сводки")
}

func TestStore_InsertWrapsError(t *testing.T) {
	m := &fakeTxManager{}
	m.tx.execErr = errors.New("deadlock")
	store := NewStore(m)

	err := store.Insert(context.Background(), &models.JournalEntry{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store.Insert:")
	assert.Contains(t, err.Error(), "deadlock")
}
