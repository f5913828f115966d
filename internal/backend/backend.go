// Package backend selects and opens the durable state store.
package backend

import (
	"fmt"
	"log/slog"

	"tally/internal/kv"
	"tally/internal/kv/memory"
	"tally/internal/kv/sqlite"
)

type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

type Config struct {
	Type         Type
	SQLiteDBPath string
}

// Open returns the configured kv.Store. The memory backend holds nothing
// across restarts and exists for local runs and tests.
func Open(cfg Config, logger *slog.Logger) (kv.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case SQLite:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite state backend", "db_path", cfg.SQLiteDBPath)
		return store, nil
	case Memory:
		logger.Info("Initialized memory state backend")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
