package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	journal "yingyang_bot/internal/modules/journal/service"
)

// Миграция пока одна, но schema_migrations уже готова к следующим.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{version: 1, name: "signal_journal", sql: journal.SchemaSQL},
}

func main() {
	dsnFlag := flag.String("dsn", "", "postgres dsn, overrides yaml and PG_DSN")
	flag.Parse()

	dsn, err := resolveDSN(*dsnFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, dsn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveDSN: флаг > PG_DSN > postgres.dsn из yaml-конфига.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if v := os.Getenv("PG_DSN"); v != "" {
		return v, nil
	}

	name := os.Getenv("CONFIG_FILE")
	if name == "" {
		name = "values_local.yaml"
	}
	viper.SetConfigFile("configs/" + name)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return "", errors.Wrap(err, "read config")
	}
	dsn := viper.GetString("postgres.dsn")
	if dsn == "" {
		return "", errors.New("postgres.dsn is empty: pass --dsn or PG_DSN")
	}
	return dsn, nil
}

func run(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return errors.Wrap(err, "connect")
	}
	defer func() { _ = conn.Close(ctx) }()

	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
		    version    INT         PRIMARY KEY,
		    name       TEXT        NOT NULL,
		    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return errors.Wrap(err, "create schema_migrations")
	}

	current := 0
	if err := conn.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return errors.Wrap(err, "read current version")
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := conn.Begin(ctx)
		if err != nil {
			return errors.Wrap(err, "begin")
		}
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return errors.Wrapf(err, "apply %d_%s", m.version, m.name)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name); err != nil {
			_ = tx.Rollback(ctx)
			return errors.Wrapf(err, "record %d_%s", m.version, m.name)
		}
		if err := tx.Commit(ctx); err != nil {
			return errors.Wrapf(err, "commit %d_%s", m.version, m.name)
		}
		fmt.Printf("%d_%s applied\n", m.version, m.name)
		applied++
		current = m.version
	}

	if applied == 0 {
		fmt.Printf("schema up to date, version %d\n", current)
		return nil
	}
	fmt.Printf("done, version %d\n", current)
	return nil
}
