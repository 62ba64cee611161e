package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to open the MySQL pool.
// The DSN must include parseTime=true so DATETIME columns scan into
// time.Time.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a MySQL connection pool and verifies connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the users and notes tables when absent. Deleting a
// user cascades to its notes at the storage level.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const usersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL
	)`

	const notesTable = `
	CREATE TABLE IF NOT EXISTS notes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		title VARCHAR(100) NOT NULL,
		content TEXT,
		position TEXT,
		size TEXT,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		INDEX idx_notes_user_updated (user_id, updated_at),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`

	if _, err := db.ExecContext(ctx, usersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, notesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	return nil
}
