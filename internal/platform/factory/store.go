// Package factory builds the store selected by configuration.
package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thislife/planner/internal/config"
	"github.com/thislife/planner/internal/store"
	"github.com/thislife/planner/internal/store/postgres"
	"github.com/thislife/planner/internal/store/sqlite"
)

// NewStore selects the store adapter based on cfg.DBDriver. Local mode keeps
// a sqlite database under the user's home directory so snapshot sync
// survives restarts without any configuration.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.New(cfg.PostgresDSN)
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "local":
		path, err := defaultLocalPath()
		if err != nil {
			return nil, err
		}
		return sqlite.New(path)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}

func defaultLocalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".this-life", "planner.db"), nil
}
