// Package ai produces the free-text progress insight by sending the
// current task list to an external generative endpoint. The response
// is untrusted display text: rendered verbatim, never parsed.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"reportTracker/internal/models/task"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-3-pro-preview"
	defaultTimeout  = 30 * time.Second
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("insight generation is not configured")

// TaskSummary is the slice of a task that leaves the system: content,
// deadline, status and notes, nothing else.
type TaskSummary struct {
	Content  string `json:"content"`
	Deadline string `json:"deadline"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// Summarize projects tasks into the fields shared with the endpoint.
// The status is the derived display status against today, so a task
// past its deadline reaches the model as overdue, the same way the
// dashboard shows it.
func Summarize(tasks []*task.Task, today task.Date) []TaskSummary {
	out := make([]TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskSummary{
			Content:  t.Content,
			Deadline: t.Deadline.String(),
			Status:   string(t.DisplayStatusOn(today)),
			Notes:    t.Notes,
		})
	}
	return out
}

// Generator is the narrow seam the service and handlers depend on, so
// everything above it is testable without a live network.
type Generator interface {
	GenerateInsight(ctx context.Context, tasks []TaskSummary) (string, error)
}

// Client talks to a Gemini-style generateContent endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func NewClient(endpoint, model, apiKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type apiRequest struct {
	Contents []apiContent `json:"contents"`
}

type apiContent struct {
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []apiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GenerateInsight(ctx context.Context, tasks []TaskSummary) (string, error) {
	if c.apiKey == "" {
		return "", ErrDisabled
	}

	prompt, err := buildPrompt(tasks)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(apiRequest{
		Contents: []apiContent{{Parts: []apiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling insight endpoint: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("insight endpoint: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("insight endpoint returned status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("insight endpoint returned no content")
	}

	text := ""
	for _, part := range parsed.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}

// buildPrompt renders the fixed instruction template around the task
// list. The wording is the one the unit's reports have always used.
func buildPrompt(tasks []TaskSummary) (string, error) {
	listing, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encoding task list: %w", err)
	}

	return fmt.Sprintf(`Bạn là một chuyên gia quản lý dự án cấp cao. Dưới đây là danh sách các công việc báo cáo:
%s

Hãy thực hiện:
1. Tóm tắt ngắn gọn tình hình hiện tại (tổng số việc, bao nhiêu trễ, bao nhiêu xong).
2. Chỉ ra 3 rủi ro lớn nhất dựa trên deadline và ghi chú.
3. Đưa ra 3 lời khuyên hành động cụ thể để đẩy nhanh tiến độ.

Yêu cầu: Viết bằng tiếng Việt, giọng văn chuyên nghiệp, súc tích, định dạng Markdown rõ ràng.`, listing), nil
}
