package stats_test

import (
	"testing"
	"time"

	"reportTracker/internal/models/task"
	"reportTracker/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = task.NewDate(2025, time.June, 15)

func d(y int, m time.Month, day int) task.Date {
	return task.NewDate(y, m, day)
}

func dp(y int, m time.Month, day int) *task.Date {
	v := task.NewDate(y, m, day)
	return &v
}

func fixture() []*task.Task {
	return []*task.Task{
		// Completed early: done 5 days before deadline.
		{ID: "a", Seq: 1, Deadline: d(2025, 1, 10), Status: task.StatusCompleted, CompletedDate: dp(2025, 1, 5)},
		// Completed exactly on the deadline: not early.
		{ID: "b", Seq: 2, Deadline: d(2025, 1, 20), Status: task.StatusCompleted, CompletedDate: dp(2025, 1, 20)},
		// In progress but past deadline: displays overdue.
		{ID: "c", Seq: 3, Deadline: d(2025, 2, 1), Status: task.StatusInProgress},
		// Pending with a future deadline.
		{ID: "d", Seq: 4, Deadline: d(2025, 12, 1), Status: task.StatusPending},
		// In progress, future deadline.
		{ID: "e", Seq: 5, Deadline: d(2025, 7, 1), Status: task.StatusInProgress},
		// Another year entirely.
		{ID: "f", Seq: 6, Deadline: d(2024, 6, 1), Status: task.StatusPending},
	}
}

func TestAggregateFullYear(t *testing.T) {
	overview := stats.Aggregate(fixture(), 2025, stats.AllMonths, today)

	assert.Equal(t, 5, overview.Total)
	assert.Equal(t, 2, overview.Completed)
	assert.Equal(t, 1, overview.InProgress)
	assert.Equal(t, 1, overview.Pending)
	assert.Equal(t, 1, overview.Overdue)
	assert.Equal(t, 1, overview.Early)

	// Display-status counts partition the filtered set exactly.
	sum := overview.Completed + overview.InProgress + overview.Pending + overview.Overdue
	assert.Equal(t, overview.Total, sum)

	assert.InDelta(t, 40.0, overview.CompletedPercent, 0.001)
	assert.InDelta(t, 20.0, overview.OverduePercent, 0.001)
	assert.InDelta(t, 20.0, overview.EarlyPercent, 0.001)

	require.Len(t, overview.EarlyList, 1)
	assert.Equal(t, "a", overview.EarlyList[0].ID)
}

func TestAggregateMonthFilter(t *testing.T) {
	overview := stats.Aggregate(fixture(), 2025, stats.Month(1), today)

	assert.Equal(t, 2, overview.Total)
	assert.Equal(t, 2, overview.Completed)
	assert.Equal(t, 0, overview.Overdue)
	assert.InDelta(t, 100.0, overview.CompletedPercent, 0.001)
	// The early percentage stays period-relative.
	assert.InDelta(t, 50.0, overview.EarlyPercent, 0.001)
}

func TestAggregateEmpty(t *testing.T) {
	overview := stats.Aggregate(nil, 2025, stats.AllMonths, today)

	assert.Equal(t, 0, overview.Total)
	assert.Zero(t, overview.CompletedPercent)
	assert.Zero(t, overview.OverduePercent)
	assert.Zero(t, overview.EarlyPercent)
	assert.NotNil(t, overview.EarlyList)
	assert.Empty(t, overview.EarlyList)
}

func TestAggregatePercentRounding(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Seq: 1, Deadline: d(2025, 3, 1), Status: task.StatusCompleted, CompletedDate: dp(2025, 3, 1)},
		{ID: "b", Seq: 2, Deadline: d(2025, 3, 2), Status: task.StatusPending},
		{ID: "c", Seq: 3, Deadline: d(2025, 3, 3), Status: task.StatusPending},
	}
	overview := stats.Aggregate(tasks, 2025, stats.AllMonths, d(2025, 1, 1))

	// 1/3 rounds to one decimal place.
	assert.InDelta(t, 33.3, overview.CompletedPercent, 0.001)
}

func TestAggregateSkipsBadDeadlines(t *testing.T) {
	tasks := []*task.Task{
		{ID: "ok", Seq: 1, Deadline: d(2025, 5, 1), Status: task.StatusPending},
		{ID: "broken", Seq: 2, Status: task.StatusPending}, // zero deadline
	}
	overview := stats.Aggregate(tasks, 2025, stats.AllMonths, today)

	assert.Equal(t, 1, overview.Total)
	assert.Equal(t, 1, overview.Skipped)
}

func TestAggregateStatusBreakdownOmitsZeroCounts(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Seq: 1, Deadline: d(2025, 1, 10), Status: task.StatusCompleted, CompletedDate: dp(2025, 1, 9)},
		{ID: "b", Seq: 2, Deadline: d(2025, 2, 1), Status: task.StatusInProgress},
	}
	overview := stats.Aggregate(tasks, 2025, stats.AllMonths, today)

	assert.Equal(t, map[task.DisplayStatus]int{
		task.DisplayCompleted: 1,
		task.DisplayOverdue:   1,
	}, overview.StatusBreakdown)
	assert.NotContains(t, overview.StatusBreakdown, task.DisplayPending)
}

func TestEarlyListRankingAndTruncation(t *testing.T) {
	var tasks []*task.Task
	// Seven early completions, finished on successive days.
	for i := 1; i <= 7; i++ {
		tasks = append(tasks, &task.Task{
			ID:            string(rune('a' + i - 1)),
			Seq:           i,
			Deadline:      d(2025, 3, 28),
			Status:        task.StatusCompleted,
			CompletedDate: dp(2025, 3, i),
		})
	}
	// Same completion date as seq 7: the lower seq wins the tie.
	tasks = append(tasks, &task.Task{
		ID: "tie", Seq: 3, Deadline: d(2025, 3, 28),
		Status: task.StatusCompleted, CompletedDate: dp(2025, 3, 7),
	})

	overview := stats.Aggregate(tasks, 2025, stats.AllMonths, today)
	require.Len(t, overview.EarlyList, stats.EarlyListLimit)

	assert.Equal(t, "tie", overview.EarlyList[0].ID) // 03-07, seq 3
	assert.Equal(t, "g", overview.EarlyList[1].ID)   // 03-07, seq 7
	assert.Equal(t, "f", overview.EarlyList[2].ID)   // 03-06
	assert.Equal(t, "e", overview.EarlyList[3].ID)
	assert.Equal(t, "d", overview.EarlyList[4].ID)
}

func TestMonthlySeries(t *testing.T) {
	series := stats.MonthlySeries(fixture(), 2025, today)

	jan := series[0]
	assert.Equal(t, time.January, jan.Month)
	assert.Equal(t, 2, jan.Completed)
	// One of January's two completions beat its deadline.
	assert.InDelta(t, 0.5, jan.ExcellenceRatio, 0.001)

	feb := series[1]
	assert.Equal(t, 1, feb.Overdue)
	assert.Zero(t, feb.ExcellenceRatio)

	dec := series[11]
	assert.Equal(t, 1, dec.Pending)

	// Months with nothing in them stay zero, ratio included.
	assert.Zero(t, series[3].Completed)
	assert.Zero(t, series[3].ExcellenceRatio)
}

func TestTasksOnDay(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Seq: 1, Deadline: d(2025, 4, 10), Status: task.StatusPending},
		{ID: "b", Seq: 2, Deadline: d(2025, 4, 10), Status: task.StatusCompleted, CompletedDate: dp(2025, 4, 1)},
		{ID: "c", Seq: 3, Deadline: d(2025, 4, 11), Status: task.StatusPending},
		{ID: "broken", Seq: 4, Status: task.StatusPending},
	}

	onDay := stats.TasksOnDay(tasks, 2025, time.April, 10)
	require.Len(t, onDay, 2)
	// Collection order, no status filtering.
	assert.Equal(t, "a", onDay[0].ID)
	assert.Equal(t, "b", onDay[1].ID)

	assert.Empty(t, stats.TasksOnDay(tasks, 2025, time.April, 12))
}
