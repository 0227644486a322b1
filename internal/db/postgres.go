package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Open подключается к Postgres, настраивает пул и проверяет связь.
// Хэндл возвращается вызывающему — пакетной глобали нет.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	// Ping с таймаутом, чтобы не вешать процесс при недоступной базе
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	logSafeDSN(dsn)
	return conn, nil
}

// Migrate создаёт таблицы, если их ещё нет. Никакой системы миграций —
// схема маленькая и меняется редко.
func Migrate(ctx context.Context, conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			full_name     TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'press'
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			category   TEXT NOT NULL DEFAULT '',
			source     TEXT NOT NULL DEFAULT 'manual',
			author_id  BIGINT REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS photos (
			id          BIGSERIAL PRIMARY KEY,
			filename    TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			uploader_id BIGINT REFERENCES users(id),
			news_id     BIGINT REFERENCES news(id)
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id          BIGSERIAL PRIMARY KEY,
			filename    TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			uploader_id BIGINT REFERENCES users(id)
		)`,
	}
	for _, s := range stmts {
		if _, err := conn.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("db: migrate: %w", err)
		}
	}
	return nil
}

// Логируем только «куда подключились», без пароля и полного DSN.
func logSafeDSN(dsn string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("db: connected (URL DSN provided)")
		return
	}
	var host, user, name string
	for _, part := range strings.Fields(dsn) {
		switch {
		case strings.HasPrefix(part, "host="):
			host = strings.TrimPrefix(part, "host=")
		case strings.HasPrefix(part, "user="):
			user = strings.TrimPrefix(part, "user=")
		case strings.HasPrefix(part, "dbname="):
			name = strings.TrimPrefix(part, "dbname=")
		}
	}
	log.Printf("db: connected (host=%s user=%s db=%s)", host, user, name)
}
