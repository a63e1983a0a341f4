package dto

import (
	"reportTracker/internal/models/task"
)

type LoginRequest struct {
	Username string `json:"username"`
}

type CreateTaskRequest struct {
	Content       string      `json:"content"`
	DocumentRef   string      `json:"documentRef"`
	Deadline      task.Date   `json:"deadline"`
	Status        task.Status `json:"status,omitempty"`
	Notes         string      `json:"notes"`
	CompletedDate *task.Date  `json:"completedDate,omitempty"`
}

type UpdateTaskRequest struct {
	Content       *string      `json:"content,omitempty"`
	DocumentRef   *string      `json:"documentRef,omitempty"`
	Deadline      *task.Date   `json:"deadline,omitempty"`
	Status        *task.Status `json:"status,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	CompletedDate *task.Date   `json:"completedDate,omitempty"`
}

// Options translates the request into the field setters it carries.
// Setters for invalid values come back nil and are skipped downstream.
func (r *UpdateTaskRequest) Options() []task.TaskOption {
	var opts []task.TaskOption
	if r.Content != nil {
		opts = append(opts, task.WithContent(*r.Content))
	}
	if r.DocumentRef != nil {
		opts = append(opts, task.WithDocumentRef(*r.DocumentRef))
	}
	if r.Deadline != nil {
		opts = append(opts, task.WithDeadline(*r.Deadline))
	}
	if r.Status != nil {
		opts = append(opts, task.WithStatus(*r.Status))
	}
	if r.Notes != nil {
		opts = append(opts, task.WithNotes(*r.Notes))
	}
	if r.CompletedDate != nil {
		opts = append(opts, task.WithCompletedDate(r.CompletedDate))
	}
	return opts
}

// TaskResponse is the stored task plus the two read-side derivations:
// the status as it should be displayed today and the early-completion
// flag.
type TaskResponse struct {
	ID            string     `json:"id"`
	Seq           int        `json:"stt"`
	Content       string     `json:"content"`
	DocumentRef   string     `json:"documentRef"`
	Deadline      task.Date  `json:"deadline"`
	Status        string     `json:"status"`
	DisplayStatus string     `json:"displayStatus"`
	Notes         string     `json:"notes"`
	OwnerID       string     `json:"userId"`
	OwnerName     string     `json:"ownerName,omitempty"`
	CompletedDate *task.Date `json:"completedDate,omitempty"`
	IsEarly       bool       `json:"isEarly"`
}

func FromTask(t *task.Task, today task.Date) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		Seq:           t.Seq,
		Content:       t.Content,
		DocumentRef:   t.DocumentRef,
		Deadline:      t.Deadline,
		Status:        string(t.Status),
		DisplayStatus: string(t.DisplayStatusOn(today)),
		Notes:         t.Notes,
		OwnerID:       t.OwnerID,
		OwnerName:     t.OwnerName,
		CompletedDate: t.CompletedDate,
		IsEarly:       t.IsEarlyCompletion(),
	}
}

func FromTaskList(tasks []*task.Task, today task.Date) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, today)
	}
	return result
}
