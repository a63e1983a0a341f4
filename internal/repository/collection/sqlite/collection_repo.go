package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
)

// keyPrefix is the historical storage key convention. It never leaves
// this package; callers deal in owner ids only.
const keyPrefix = "tasks_"

// Storage is the local single-file backend: one row per owner holding
// the serialized collection, replaced wholesale on every save.
type Storage struct {
	db *sqlx.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL keeps reads cheap while a save is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("Repository: sqlite storage opened")
	return s, nil
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS collections (
	storage_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func (s *Storage) Close() {
	s.db.Close()
	logger.Info("Repository: sqlite storage closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping: %w", err)
	}
	return nil
}

func (s *Storage) ListOwners(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.SelectContext(ctx, &keys,
		`SELECT storage_key FROM collections WHERE storage_key LIKE ? ORDER BY storage_key`,
		keyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("listing owners: %w", err)
	}

	owners := make([]string, 0, len(keys))
	for _, k := range keys {
		owners = append(owners, strings.TrimPrefix(k, keyPrefix))
	}
	return owners, nil
}

func (s *Storage) LoadCollection(ctx context.Context, ownerID string) ([]*task.Task, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		`SELECT payload FROM collections WHERE storage_key = ?`, keyPrefix+ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading collection %s: %w", ownerID, err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal([]byte(payload), &tasks); err != nil {
		return nil, fmt.Errorf("owner %s: %w: %v", ownerID, repository.ErrCorrupted, err)
	}
	return tasks, nil
}

func (s *Storage) SaveCollection(ctx context.Context, ownerID string, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", ownerID, err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO collections (storage_key, payload, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(storage_key) DO UPDATE SET
	payload = excluded.payload,
	updated_at = CURRENT_TIMESTAMP`,
		keyPrefix+ownerID, string(payload))
	if err != nil {
		return fmt.Errorf("saving collection %s: %w", ownerID, err)
	}
	return nil
}

func (s *Storage) DeleteCollection(ctx context.Context, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE storage_key = ?`, keyPrefix+ownerID)
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", ownerID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
