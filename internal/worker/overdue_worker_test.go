package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportTracker/internal/models/task"
	"reportTracker/internal/repository/collection/inmemory"
)

func TestCheckCountsOverduePerOwner(t *testing.T) {
	repo := inmemory.NewStorage()
	ctx := context.Background()

	today := task.NewDate(2025, time.June, 15)
	completed := task.NewDate(2025, time.June, 1)

	require.NoError(t, repo.SaveCollection(ctx, "u2", []*task.Task{
		{ID: "a", Seq: 1, Deadline: task.NewDate(2025, time.June, 1), Status: task.StatusPending},
		{ID: "b", Seq: 2, Deadline: task.NewDate(2025, time.June, 10), Status: task.StatusInProgress},
		{ID: "c", Seq: 3, Deadline: task.NewDate(2025, time.June, 1), Status: task.StatusCompleted, CompletedDate: &completed},
		{ID: "d", Seq: 4, Deadline: task.NewDate(2025, time.July, 1), Status: task.StatusPending},
	}))
	require.NoError(t, repo.SaveCollection(ctx, "u3", []*task.Task{
		{ID: "e", Seq: 1, Deadline: task.NewDate(2025, time.July, 20), Status: task.StatusPending},
	}))

	w := NewOverdueWorker(repo, time.Minute)
	w.now = func() task.Date { return today }

	perOwner := w.Check(ctx)
	assert.Equal(t, map[string]int{"u2": 2}, perOwner)
}

func TestCheckDoesNotRewriteStoredStatus(t *testing.T) {
	repo := inmemory.NewStorage()
	ctx := context.Background()

	require.NoError(t, repo.SaveCollection(ctx, "u2", []*task.Task{
		{ID: "a", Seq: 1, Deadline: task.NewDate(2020, time.January, 1), Status: task.StatusPending},
	}))

	w := NewOverdueWorker(repo, time.Minute)
	w.Check(ctx)

	stored, err := repo.LoadCollection(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, stored[0].Status)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	repo := inmemory.NewStorage()
	w := NewOverdueWorker(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
