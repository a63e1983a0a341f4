// Package csvio renders task rows in the spreadsheet format the unit
// exchanges with other offices: localized headers and statuses, dates
// as dd/mm/yyyy, UTF-8 BOM so Excel detects the encoding.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reportTracker/internal/models/task"
)

const localDateLayout = "02/01/2006"

var header = []string{"STT", "Nội dung công việc", "Văn bản yêu cầu", "Thời hạn", "Trạng thái", "Ghi chú"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var statusLabels = map[string]task.Status{
	string(task.StatusPending):    task.StatusPending,
	string(task.StatusInProgress): task.StatusInProgress,
	string(task.StatusCompleted):  task.StatusCompleted,
	string(task.StatusOverdue):    task.StatusOverdue,
}

// Export writes the collection as CSV. Only the six exchanged columns
// are emitted; id, owner and completion date stay internal.
func Export(tasks []*task.Task) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.Seq),
			t.Content,
			t.DocumentRef,
			t.Deadline.Format(localDateLayout),
			string(t.Status),
			t.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", t.Seq, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Row is a partial task parsed from one CSV line. It carries no id,
// sequence number or owner; the import path assigns those.
type Row struct {
	Content     string
	DocumentRef string
	Deadline    task.Date
	Status      task.Status
	Notes       string
}

// Import parses CSV data exported by this system (or edited in a
// spreadsheet) back into partial rows. Rows with empty content are
// skipped, unknown status labels fall back to pending, and a date that
// does not parse as dd/mm/yyyy falls back to today.
func Import(data []byte, today task.Date) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // hand-edited files are often ragged

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := []Row{}
	for _, record := range records[1:] { // skip header
		content := field(record, 1)
		if strings.TrimSpace(content) == "" {
			continue
		}

		status, ok := statusLabels[strings.TrimSpace(field(record, 4))]
		if !ok {
			status = task.StatusPending
		}

		deadline := today
		if parsed, err := parseLocalDate(field(record, 3)); err == nil {
			deadline = parsed
		}

		rows = append(rows, Row{
			Content:     content,
			DocumentRef: field(record, 2),
			Deadline:    deadline,
			Status:      status,
			Notes:       field(record, 5),
		})
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseLocalDate(s string) (task.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return task.Date{}, fmt.Errorf("not a dd/mm/yyyy date: %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return task.Date{}, fmt.Errorf("bad day in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return task.Date{}, fmt.Errorf("bad month in %q: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return task.Date{}, fmt.Errorf("bad year in %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return task.Date{}, fmt.Errorf("out of range date: %q", s)
	}
	return task.NewDate(year, time.Month(month), day), nil
}
