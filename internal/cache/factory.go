package cache

import (
	"fmt"

	"github.com/MRaysa/medai-client/pkg/config"
)

// Open builds the configured Store backend.
func Open(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLite(cfg.SQLite.Path)
	case "redis":
		return NewRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	case "memory", "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
