package task

import "sort"

// NextSeq returns the sequence number for a task appended to the
// collection: max(stt)+1, or 1 for an empty collection.
func NextSeq(tasks []*Task) int {
	max := 0
	for _, t := range tasks {
		if t.Seq > max {
			max = t.Seq
		}
	}
	return max + 1
}

// RemoveAndRenumber removes the task with the given id from the
// collection and renumbers the remainder 1..N in their existing
// relative order. When no task matches, the collection is returned
// unchanged and found is false.
func RemoveAndRenumber(tasks []*Task, id string) (found bool, remaining []*Task) {
	remaining = make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, t)
	}
	if !found {
		return false, tasks
	}
	for i, t := range remaining {
		t.Seq = i + 1
	}
	return true, remaining
}

// FindByID returns the task with the given id, or nil.
func FindByID(tasks []*Task, id string) *Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SortBySeq orders tasks by sequence number ascending. Used for the
// admin union view, where sequence numbers from different owners may
// collide; the sort is stable so ties keep their relative order.
func SortBySeq(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Seq < tasks[j].Seq
	})
}
