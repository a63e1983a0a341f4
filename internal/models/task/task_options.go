package task

// TaskOption mutates a single field during an update. Ownership fields
// have no option on purpose: edits never reassign a task.
type TaskOption func(*Task)

func WithContent(content string) TaskOption {
	return func(t *Task) {
		t.Content = content
	}
}

func WithDocumentRef(ref string) TaskOption {
	return func(t *Task) {
		t.DocumentRef = ref
	}
}

func WithDeadline(deadline Date) TaskOption {
	if deadline.IsZero() {
		return nil
	}
	return func(t *Task) {
		t.Deadline = deadline
	}
}

func WithStatus(status Status) TaskOption {
	if !status.Valid() {
		return nil
	}
	return func(t *Task) {
		t.Status = status
	}
}

func WithNotes(notes string) TaskOption {
	return func(t *Task) {
		t.Notes = notes
	}
}

func WithCompletedDate(d *Date) TaskOption {
	return func(t *Task) {
		t.CompletedDate = d
	}
}
