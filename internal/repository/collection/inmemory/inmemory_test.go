package inmemory_test

import (
	"context"
	"testing"

	"reportTracker/internal/models/task"
	"reportTracker/internal/repository"
	"reportTracker/internal/repository/collection/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCollection() []*task.Task {
	return []*task.Task{
		{ID: "t1", Seq: 1, Content: "Báo cáo tháng", OwnerID: "u2", Status: task.StatusPending},
		{ID: "t2", Seq: 2, Content: "Tổng hợp số liệu", OwnerID: "u2", Status: task.StatusInProgress},
	}
}

func TestSaveAndLoadCollection(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	require.NoError(t, storage.SaveCollection(ctx, "u2", sampleCollection()))

	loaded, err := storage.LoadCollection(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "t1", loaded[0].ID)
	assert.Equal(t, task.StatusInProgress, loaded[1].Status)
}

func TestLoadMissingCollection(t *testing.T) {
	storage := inmemory.NewStorage()

	_, err := storage.LoadCollection(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	require.NoError(t, storage.SaveCollection(ctx, "u2", sampleCollection()))
	require.NoError(t, storage.SaveCollection(ctx, "u2", []*task.Task{
		{ID: "t9", Seq: 1, Content: "chỉ còn một việc", OwnerID: "u2"},
	}))

	loaded, err := storage.LoadCollection(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "t9", loaded[0].ID)
}

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	require.NoError(t, storage.SaveCollection(ctx, "u2", sampleCollection()))

	loaded, err := storage.LoadCollection(ctx, "u2")
	require.NoError(t, err)
	loaded[0].Content = "mutated by caller"

	again, err := storage.LoadCollection(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Báo cáo tháng", again[0].Content)
}

func TestListOwnersSorted(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()

	require.NoError(t, storage.SaveCollection(ctx, "u3", sampleCollection()))
	require.NoError(t, storage.SaveCollection(ctx, "u1", sampleCollection()))
	require.NoError(t, storage.SaveCollection(ctx, "u2", sampleCollection()))

	owners, err := storage.ListOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, owners)
}

func TestDeleteCollection(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewStorage()
	require.NoError(t, storage.SaveCollection(ctx, "u2", sampleCollection()))

	require.NoError(t, storage.DeleteCollection(ctx, "u2"))

	_, err := storage.LoadCollection(ctx, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.DeleteCollection(ctx, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
