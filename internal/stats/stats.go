// Package stats is the read-side aggregation engine behind the
// dashboard, trend and calendar views. Everything here is a pure
// projection over a task slice; nothing is ever written back.
package stats

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"reportTracker/internal/logger"
	"reportTracker/internal/models/task"
)

// Month filters aggregation to one calendar month (1-12).
// AllMonths disables the month filter.
type Month int

const AllMonths Month = 0

func (m Month) Valid() bool {
	return m == AllMonths || (m >= 1 && m <= 12)
}

// EarlyListLimit caps the "ahead of schedule" highlight list.
const EarlyListLimit = 5

type Overview struct {
	Total            int                        `json:"total"`
	Completed        int                        `json:"completed"`
	InProgress       int                        `json:"inProgress"`
	Pending          int                        `json:"pending"`
	Overdue          int                        `json:"overdue"`
	Early            int                        `json:"early"`
	CompletedPercent float64                    `json:"completedPercent"`
	OverduePercent   float64                    `json:"overduePercent"`
	EarlyPercent     float64                    `json:"earlyPercent"`
	EarlyList        []*task.Task               `json:"earlyList"`
	StatusBreakdown  map[task.DisplayStatus]int `json:"statusBreakdown"`
	Skipped          int                        `json:"skipped,omitempty"`
}

// Aggregate computes dashboard statistics for tasks whose deadline
// falls in the given year (and month, unless AllMonths). Counts use the
// display status derived against today, not against the filter period.
// Records with a missing or unparseable deadline are excluded and
// counted in Skipped; one bad record never fails the whole computation.
func Aggregate(tasks []*task.Task, year int, month Month, today task.Date) Overview {
	overview := Overview{
		EarlyList:       []*task.Task{},
		StatusBreakdown: map[task.DisplayStatus]int{},
	}

	for _, t := range tasks {
		if t.Deadline.IsZero() {
			logger.Warn("Stats: record without usable deadline skipped",
				zap.String("task_id", t.ID), zap.String("owner_id", t.OwnerID))
			overview.Skipped++
			continue
		}
		if t.Deadline.Year() != year {
			continue
		}
		if month != AllMonths && t.Deadline.Month() != time.Month(month) {
			continue
		}

		overview.Total++
		switch t.DisplayStatusOn(today) {
		case task.DisplayCompleted:
			overview.Completed++
		case task.DisplayInProgress:
			overview.InProgress++
		case task.DisplayOverdue:
			overview.Overdue++
		default:
			overview.Pending++
		}
		overview.StatusBreakdown[t.DisplayStatusOn(today)]++

		if t.IsEarlyCompletion() {
			overview.Early++
			overview.EarlyList = append(overview.EarlyList, t)
		}
	}

	overview.CompletedPercent = percent(overview.Completed, overview.Total)
	overview.OverduePercent = percent(overview.Overdue, overview.Total)
	overview.EarlyPercent = percent(overview.Early, overview.Total)

	rankEarly(overview.EarlyList)
	if len(overview.EarlyList) > EarlyListLimit {
		overview.EarlyList = overview.EarlyList[:EarlyListLimit]
	}

	return overview
}

// rankEarly orders the highlight list by completion date descending
// (most recently finished first), tie-broken by sequence number
// ascending.
func rankEarly(list []*task.Task) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.CompletedDate.Equal(*b.CompletedDate) {
			return b.CompletedDate.Before(*a.CompletedDate)
		}
		return a.Seq < b.Seq
	})
}

// percent returns count/total as a percentage with one decimal,
// and 0 for an empty total (never NaN).
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// MonthBucket is one month of the year-scoped trend series.
type MonthBucket struct {
	Month      time.Month `json:"month"`
	Completed  int        `json:"completed"`
	InProgress int        `json:"inProgress"`
	Pending    int        `json:"pending"`
	Overdue    int        `json:"overdue"`
	// ExcellenceRatio is early / (early + completed-excluding-early),
	// i.e. the share of completions that beat their deadline.
	ExcellenceRatio float64 `json:"excellenceRatio"`
}

// MonthlySeries buckets a year's tasks by deadline month, independent
// of any month filter applied to the overview.
func MonthlySeries(tasks []*task.Task, year int, today task.Date) [12]MonthBucket {
	var series [12]MonthBucket
	early := [12]int{}

	for i := range series {
		series[i].Month = time.Month(i + 1)
	}

	for _, t := range tasks {
		if t.Deadline.IsZero() || t.Deadline.Year() != year {
			continue
		}
		idx := int(t.Deadline.Month()) - 1

		switch t.DisplayStatusOn(today) {
		case task.DisplayCompleted:
			series[idx].Completed++
		case task.DisplayInProgress:
			series[idx].InProgress++
		case task.DisplayOverdue:
			series[idx].Overdue++
		default:
			series[idx].Pending++
		}
		if t.IsEarlyCompletion() {
			early[idx]++
		}
	}

	for i := range series {
		if series[i].Completed > 0 {
			series[i].ExcellenceRatio = math.Round(float64(early[i])/float64(series[i].Completed)*1000) / 1000
		}
	}
	return series
}

// TasksOnDay returns the tasks whose deadline is exactly the given
// calendar day, in collection order, with no status filtering.
func TasksOnDay(tasks []*task.Task, year int, month time.Month, day int) []*task.Task {
	out := []*task.Task{}
	for _, t := range tasks {
		if t.Deadline.IsZero() {
			continue
		}
		if t.Deadline.Year() == year && t.Deadline.Month() == month && t.Deadline.Day() == day {
			out = append(out, t)
		}
	}
	return out
}
