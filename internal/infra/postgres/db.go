// Package postgres persists API tokens in Postgres through the pgx
// database/sql driver.
package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"cardrender/internal/config"
)

const defaultPort = 5432

// DSN builds a connection URL from cfg. A host that already is a
// postgres:// URL is returned as is.
func DSN(cfg config.PostgresConfig) (string, error) {
	if strings.HasPrefix(cfg.Host, "postgres://") || strings.HasPrefix(cfg.Host, "postgresql://") {
		return cfg.Host, nil
	}
	switch {
	case cfg.Host == "":
		return "", fmt.Errorf("postgres host is empty")
	case cfg.Database == "":
		return "", fmt.Errorf("postgres database is empty")
	case cfg.User == "":
		return "", fmt.Errorf("postgres user is empty")
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	host := cfg.Host
	switch {
	case strings.HasPrefix(host, "["):
		if !strings.Contains(host, "]:") {
			host = fmt.Sprintf("%s:%d", host, port)
		}
	case strings.Count(host, ":") >= 2:
		// bare IPv6 address
		host = fmt.Sprintf("[%s]:%d", host, port)
	case !strings.Contains(host, ":"):
		host = fmt.Sprintf("%s:%d", host, port)
	}

	u := &url.URL{Scheme: "postgres", Host: host, Path: "/" + cfg.Database}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}
	if cfg.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", cfg.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// DB holds one *sql.DB and reopens it when the DSN changes.
type DB struct {
	mu  sync.Mutex
	dsn string
	db  *sql.DB
}

func NewDB() *DB {
	return &DB{}
}

// Get returns the pool for dsn. Opening does not dial; the first query does.
func (p *DB) Get(dsn string) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil && p.dsn == dsn {
		return p.db, nil
	}
	if p.db != nil {
		_ = p.db.Close()
		p.db, p.dsn = nil, ""
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// small control-plane table
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	p.db, p.dsn = db, dsn
	return db, nil
}

func (p *DB) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db, p.dsn = nil, ""
	return err
}
