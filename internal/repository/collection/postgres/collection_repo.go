package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
)

const keyPrefix = "tasks_"

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: failed to parse connection config", err)
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Migrate creates the single collections table. The schema is one blob
// per owner, so there is nothing a migration tool would manage.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS collections (
	storage_key TEXT PRIMARY KEY,
	payload     JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`)
	if err != nil {
		logger.Error("Repository: migration failed", err)
		return fmt.Errorf("migration: %w", err)
	}
	return nil
}

func (s *Storage) ListOwners(ctx context.Context) ([]string, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx,
		`SELECT storage_key FROM collections WHERE storage_key LIKE $1 ORDER BY storage_key`,
		keyPrefix+"%")
	if err != nil {
		logger.Error("Repository: failed to list owners", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("listing owners: %w", err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logger.Warn("Repository: owner row scan failed", zap.Error(err))
			continue
		}
		owners = append(owners, strings.TrimPrefix(key, keyPrefix))
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow query", zap.Duration("ms", time.Since(start)))
	}
	return owners, nil
}

func (s *Storage) LoadCollection(ctx context.Context, ownerID string) ([]*task.Task, error) {
	start := time.Now()

	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM collections WHERE storage_key = $1`,
		keyPrefix+ownerID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		logger.Error("Repository: failed to load collection", err,
			zap.String("owner_id", ownerID), zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("loading collection %s: %w", ownerID, err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		logger.Warn("Repository: corrupted payload",
			zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("owner %s: %w: %v", ownerID, repository.ErrCorrupted, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow query", zap.Duration("ms", time.Since(start)))
	}
	return tasks, nil
}

func (s *Storage) SaveCollection(ctx context.Context, ownerID string, tasks []*task.Task) error {
	start := time.Now()

	if tasks == nil {
		tasks = []*task.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", ownerID, err)
	}

	_, err = s.pool.Exec(ctx, `
INSERT INTO collections (storage_key, payload, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (storage_key) DO UPDATE SET
	payload = EXCLUDED.payload,
	updated_at = NOW()`,
		keyPrefix+ownerID, payload)
	if err != nil {
		logger.Error("Repository: failed to save collection", err,
			zap.String("owner_id", ownerID), zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("saving collection %s: %w", ownerID, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: slow query", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) DeleteCollection(ctx context.Context, ownerID string) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM collections WHERE storage_key = $1`, keyPrefix+ownerID)
	if err != nil {
		logger.Error("Repository: failed to delete collection", err,
			zap.String("owner_id", ownerID), zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("deleting collection %s: %w", ownerID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
