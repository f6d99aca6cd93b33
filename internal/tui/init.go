package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/newbeginning12/flashcal/internal/config"
	"github.com/newbeginning12/flashcal/internal/db"
	"github.com/newbeginning12/flashcal/internal/interval"
)

// EnsureStorage prepares first-run state: writes the default config file
// if none exists yet and opens (creating if needed) the database.
func EnsureStorage(cfg *config.Config) (interval.Repository, error) {
	configPath := config.DefaultConfigPath()
	if missing, err := pathMissing(configPath); err != nil {
		return nil, fmt.Errorf("checking config path: %w", err)
	} else if missing {
		if err := cfg.SaveTo(configPath); err != nil {
			return nil, fmt.Errorf("saving config: %w", err)
		}
	}

	return openRepo(cfg.Storage.DBPath)
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

func openRepo(dbPath string) (interval.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
