package task

// Task is a dated report item. It belongs to exactly one owner; OwnerID
// is stamped at creation and never reassigned by edits.
type Task struct {
	ID            string `json:"id"`
	Seq           int    `json:"stt"`
	Content       string `json:"content"`
	DocumentRef   string `json:"documentRef"`
	Deadline      Date   `json:"deadline"`
	Status        Status `json:"status"`
	Notes         string `json:"notes"`
	OwnerID       string `json:"userId"`
	OwnerName     string `json:"ownerName,omitempty"`
	CompletedDate *Date  `json:"completedDate,omitempty"`
}

// Status is the persisted state of a task. The stored values are the
// localized labels the system has always written, so old exports keep
// round-tripping.
type Status string

const (
	StatusPending    Status = "Chưa xử lý"
	StatusInProgress Status = "Đang xử lý"
	StatusCompleted  Status = "Hoàn thành"
	StatusOverdue    Status = "Quá hạn"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// DisplayStatus is the status shown to the user after the overdue
// override. It is computed on read and never written back to storage.
type DisplayStatus string

const (
	DisplayPending    = DisplayStatus(StatusPending)
	DisplayInProgress = DisplayStatus(StatusInProgress)
	DisplayCompleted  = DisplayStatus(StatusCompleted)
	DisplayOverdue    = DisplayStatus(StatusOverdue)
)

// DisplayStatusOn derives the status to show for a given "today".
// Completed always wins; otherwise a deadline strictly before today
// overrides to overdue; otherwise the persisted status stands.
func (t *Task) DisplayStatusOn(today Date) DisplayStatus {
	if t.Status == StatusCompleted {
		return DisplayCompleted
	}
	if !t.Deadline.IsZero() && t.Deadline.Before(today) {
		return DisplayOverdue
	}
	return DisplayStatus(t.Status)
}

// IsEarlyCompletion reports whether the task was completed strictly
// before its deadline. Completing on the deadline itself is not early,
// and a completed task with no completion date is never early.
func (t *Task) IsEarlyCompletion() bool {
	if t.Status != StatusCompleted || t.CompletedDate == nil {
		return false
	}
	if t.CompletedDate.IsZero() || t.Deadline.IsZero() {
		return false
	}
	return t.CompletedDate.Before(t.Deadline)
}
