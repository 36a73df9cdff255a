package cli

import (
	"fmt"
	"os"

	"github.com/Ohseho81/autus-engine/internal/config"
	"github.com/Ohseho81/autus-engine/internal/db"
	"github.com/Ohseho81/autus-engine/internal/engine"
	"github.com/Ohseho81/autus-engine/internal/store"
	"gopkg.in/yaml.v3"
)

var configFile string

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.LoadDefault()
}

// newEngine wires an engine over the default store and event log. The
// returned cleanup closes the database and must be called.
func newEngine() (*engine.Engine, *store.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.DefaultStore()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db path: %w", err)
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}

	eng := engine.New(cfg, st, database)
	eng.SetProgress(os.Stderr)
	return eng, st, func() { database.Close() }, nil
}

func openStore() (*store.Store, error) {
	st, err := store.DefaultStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func openDB() (*db.DB, error) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("db path: %w", err)
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database, nil
}

func readYAMLFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to autus.yaml (default: ./autus.yaml, ~/.autus/config.yaml)")
}
