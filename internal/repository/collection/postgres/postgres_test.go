package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
	"reportTracker/internal/repository/collection/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite runs the collection repository against a real
// PostgreSQL in a container.
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	connString string
	ctx        context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	s.storage, err = postgres.New(s.ctx, s.connString)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.storage.Migrate(s.ctx))
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, "DELETE FROM collections")
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) exec(query string, args ...any) {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx, query, args...)
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) TestSaveAndLoadCollection() {
	completed := task.NewDate(2025, time.January, 5)
	in := []*task.Task{
		{
			ID:            "t1",
			Seq:           1,
			Content:       "Báo cáo quý I",
			DocumentRef:   "CV 15/UBND",
			Deadline:      task.NewDate(2025, time.January, 10),
			Status:        task.StatusCompleted,
			CompletedDate: &completed,
			OwnerID:       "u2",
		},
	}
	require.NoError(s.T(), s.storage.SaveCollection(s.ctx, "u2", in))

	out, err := s.storage.LoadCollection(s.ctx, "u2")
	require.NoError(s.T(), err)
	require.Len(s.T(), out, 1)
	assert.Equal(s.T(), "t1", out[0].ID)
	assert.Equal(s.T(), task.StatusCompleted, out[0].Status)
	require.NotNil(s.T(), out[0].CompletedDate)
	assert.True(s.T(), completed.Equal(*out[0].CompletedDate))
}

func (s *PostgresTestSuite) TestSaveReplacesWholeCollection() {
	first := []*task.Task{
		{ID: "t1", Seq: 1, Content: "việc cũ", OwnerID: "u2"},
		{ID: "t2", Seq: 2, Content: "việc cũ khác", OwnerID: "u2"},
	}
	require.NoError(s.T(), s.storage.SaveCollection(s.ctx, "u2", first))

	second := []*task.Task{{ID: "t3", Seq: 1, Content: "việc mới", OwnerID: "u2"}}
	require.NoError(s.T(), s.storage.SaveCollection(s.ctx, "u2", second))

	out, err := s.storage.LoadCollection(s.ctx, "u2")
	require.NoError(s.T(), err)
	require.Len(s.T(), out, 1)
	assert.Equal(s.T(), "t3", out[0].ID)
}

func (s *PostgresTestSuite) TestMissingOwner() {
	_, err := s.storage.LoadCollection(s.ctx, "ghost")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	err = s.storage.DeleteCollection(s.ctx, "ghost")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestListOwners() {
	for _, owner := range []string{"u3", "u1"} {
		require.NoError(s.T(), s.storage.SaveCollection(s.ctx, owner, nil))
	}
	// A foreign key in the same table must not show up as an owner.
	s.exec(`INSERT INTO collections (storage_key, payload) VALUES ('settings_theme', '{}')`)

	owners, err := s.storage.ListOwners(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"u1", "u3"}, owners)
}

func (s *PostgresTestSuite) TestCorruptedPayload() {
	// JSONB guarantees valid JSON but not the collection shape.
	s.exec(`INSERT INTO collections (storage_key, payload) VALUES ('tasks_u9', '{"not":"an array"}')`)

	_, err := s.storage.LoadCollection(s.ctx, "u9")
	assert.ErrorIs(s.T(), err, repository.ErrCorrupted)

	// Other owners stay readable.
	require.NoError(s.T(), s.storage.SaveCollection(s.ctx, "u1", nil))
	_, err = s.storage.LoadCollection(s.ctx, "u1")
	assert.NoError(s.T(), err)
}

func (s *PostgresTestSuite) TestDeleteCollection() {
	require.NoError(s.T(), s.storage.SaveCollection(s.ctx, "u2", nil))
	require.NoError(s.T(), s.storage.DeleteCollection(s.ctx, "u2"))

	_, err := s.storage.LoadCollection(s.ctx, "u2")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestHealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration suite in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}
