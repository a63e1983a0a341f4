package csvio_test

import (
	"strings"
	"testing"
	"time"

	"reportTracker/internal/csvio"
	"reportTracker/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importToday = task.NewDate(2025, time.June, 1)

func d(y int, m time.Month, day int) task.Date {
	return task.NewDate(y, m, day)
}

func TestExportFormat(t *testing.T) {
	tasks := []*task.Task{
		{
			Seq:         1,
			Content:     `Báo cáo "khẩn", có dấu phẩy`,
			DocumentRef: "CV 15/UBND",
			Deadline:    d(2025, 1, 10),
			Status:      task.StatusInProgress,
			Notes:       "ghi chú",
		},
	}

	out, err := csvio.Export(tasks)
	require.NoError(t, err)

	// BOM for spreadsheet encoding detection.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])

	text := string(out[3:])
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú", strings.TrimSpace(lines[0]))

	// Quotes doubled, field kept whole despite the embedded comma.
	assert.Contains(t, lines[1], `"Báo cáo ""khẩn"", có dấu phẩy"`)
	assert.Contains(t, lines[1], "10/01/2025")
	assert.Contains(t, lines[1], "Đang xử lý")
}

func TestImportRoundTrip(t *testing.T) {
	tasks := []*task.Task{
		{Seq: 1, Content: "Việc thứ nhất", DocumentRef: "CV 1/UBND", Deadline: d(2025, 1, 10), Status: task.StatusPending, Notes: ""},
		{Seq: 2, Content: `Việc "phức tạp", nhiều dấu`, DocumentRef: "KH 2/HĐND", Deadline: d(2025, 2, 28), Status: task.StatusCompleted, Notes: "xong sớm"},
		{Seq: 3, Content: "Việc quá hạn", DocumentRef: "TB 3/VP", Deadline: d(2024, 12, 31), Status: task.StatusOverdue, Notes: "cần đôn đốc"},
	}

	out, err := csvio.Export(tasks)
	require.NoError(t, err)

	rows, err := csvio.Import(out, importToday)
	require.NoError(t, err)
	require.Len(t, rows, len(tasks))

	for i, row := range rows {
		assert.Equal(t, tasks[i].Content, row.Content)
		assert.Equal(t, tasks[i].DocumentRef, row.DocumentRef)
		assert.Equal(t, tasks[i].Status, row.Status)
		assert.True(t, tasks[i].Deadline.Equal(row.Deadline), "row %d deadline", i)
		assert.Equal(t, tasks[i].Notes, row.Notes)
	}
}

func TestImportSkipsEmptyContent(t *testing.T) {
	csvData := "STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú\n" +
		"1,,CV 1,10/01/2025,Chưa xử lý,\n" +
		"2,Việc thật,CV 2,11/01/2025,Chưa xử lý,\n" +
		"\n"

	rows, err := csvio.Import([]byte(csvData), importToday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Việc thật", rows[0].Content)
}

func TestImportUnknownStatusDefaultsToPending(t *testing.T) {
	csvData := "STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú\n" +
		"1,Việc lạ,CV 1,10/01/2025,Không rõ trạng thái,\n"

	rows, err := csvio.Import([]byte(csvData), importToday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, task.StatusPending, rows[0].Status)
}

func TestImportBadDateFallsBackToToday(t *testing.T) {
	csvData := "STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú\n" +
		"1,Việc không rõ hạn,CV 1,khoảng tháng sau,Chưa xử lý,\n"

	rows, err := csvio.Import([]byte(csvData), importToday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, importToday.Equal(rows[0].Deadline))
}

func TestImportRaggedRows(t *testing.T) {
	// Hand-edited files commonly drop trailing empty columns.
	csvData := "STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú\n" +
		"1,Việc thiếu cột,CV 1\n"

	rows, err := csvio.Import([]byte(csvData), importToday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Việc thiếu cột", rows[0].Content)
	assert.Equal(t, task.StatusPending, rows[0].Status)
	assert.True(t, importToday.Equal(rows[0].Deadline))
}

func TestImportHeaderOnly(t *testing.T) {
	rows, err := csvio.Import([]byte("STT,Nội dung công việc,Văn bản yêu cầu,Thời hạn,Trạng thái,Ghi chú\n"), importToday)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
