// reportctl is the operator's side door: backup, restore, reset and
// CSV export against the same storage the server uses, without going
// through HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportTracker/internal/ai"
	"reportTracker/internal/config"
	"reportTracker/internal/repository"
	"reportTracker/internal/repository/collection/inmemory"
	"reportTracker/internal/repository/collection/postgres"
	"reportTracker/internal/repository/collection/sqlite"
	"reportTracker/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "reportctl",
	Short: "Operations tool for the report tracker",
	Long:  "reportctl backs up, restores and resets the report tracker's storage, and exports task lists as CSV. It reads the same config.yaml as the server.",
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openService wires a service over the configured storage backend.
// The caller must Close the returned repository.
func openService(ctx context.Context) (*service.TaskService, repository.CollectionRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var repo repository.CollectionRepository
	switch cfg.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, err
		}
		repo = storage
	case "sqlite":
		storage, err := sqlite.New(cfg.Repository.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo = storage
	default:
		repo = inmemory.NewStorage()
	}

	insight := ai.NewClient(cfg.Insight.Endpoint, cfg.Insight.Model, cfg.Insight.APIKey, cfg.Insight.Timeout)
	return service.NewTaskService(repo, insight), repo, nil
}
