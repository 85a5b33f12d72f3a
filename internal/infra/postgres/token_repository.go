package postgres

import (
	"context"
	"fmt"
	"time"

	"cardrender/internal/tokens"
)

const createTokensTable = `CREATE TABLE IF NOT EXISTS tokens (
	token TEXT PRIMARY KEY,
	rate_limit INTEGER NOT NULL DEFAULT 60,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	comment TEXT
);`

const (
	createTokensIndex = `CREATE INDEX IF NOT EXISTS idx_tokens_created_at ON tokens (created_at);`
	selectTokens      = `SELECT token, rate_limit FROM tokens;`
)

// TokenRepository implements tokens.Repository.
type TokenRepository struct {
	DB  *DB
	DSN string
}

func NewTokenRepository(db *DB, dsn string) *TokenRepository {
	return &TokenRepository{DB: db, DSN: dsn}
}

// EnsureSchema creates the tokens table and its index when missing.
func (r *TokenRepository) EnsureSchema(ctx context.Context) error {
	db, err := r.DB.Get(r.DSN)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for _, ddl := range []string{createTokensTable, createTokensIndex} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure tokens schema: %w", err)
		}
	}
	return nil
}

func (r *TokenRepository) LoadTokens(ctx context.Context) (map[string]tokens.Entry, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	db, err := r.DB.Get(r.DSN)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, selectTokens)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	out := make(map[string]tokens.Entry)
	for rows.Next() {
		var token string
		var limit int
		if err := rows.Scan(&token, &limit); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		out[token] = tokens.Entry{RateLimit: limit}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
