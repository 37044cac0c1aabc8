package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/MRaysa/medai-client/internal/metrics"
	"github.com/MRaysa/medai-client/pkg/logger"
)

// SQLite persists cache entries in a local file, one row per scoped key.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Info("SQLite cache initialized", zap.String("path", path))

	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, scope Scope, key string, out interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM cache_entries WHERE namespace = ? AND key = ?`,
		scope.namespace(), key,
	).Scan(&raw)

	if errors.Is(err, sql.ErrNoRows) {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("Discarding malformed cache entry",
			zap.String("namespace", scope.namespace()),
			zap.String("key", key),
		)
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false, nil
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true, nil
}

func (s *SQLite) Save(ctx context.Context, scope Scope, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, scope.namespace(), key, string(raw), time.Now().Unix())

	if err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context, scope Scope, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE namespace = ? AND key = ?`,
		scope.namespace(), key,
	)
	if err != nil {
		return fmt.Errorf("failed to clear cache entry: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
