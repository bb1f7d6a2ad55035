package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Runner struct {
	BaseURL  string
	LessonID string
	Token    string
	HTTP     *http.Client
}

func NewRunner(baseURL, lessonID, token string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		LessonID: strings.TrimSpace(lessonID),
		Token:    token,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// Run executes plan's checks in order, recording each into res. It stops
// early only when ctx is cancelled; remaining checks are then failed.
func (r *Runner) Run(ctx context.Context, plan Plan, res *Results) {
	for _, check := range plan.Checks {
		if err := ctx.Err(); err != nil {
			res.Fail(check.Name, err)
			continue
		}
		if check.RequiresLesson && r.LessonID == "" {
			res.Skip(check.Name, "no lesson id")
			continue
		}
		if err := r.runCheck(ctx, check); err != nil {
			res.Fail(check.Name, err)
			continue
		}
		res.Pass(check.Name)
	}
}

func (r *Runner) runCheck(ctx context.Context, check Check) error {
	path := strings.ReplaceAll(check.Path, LessonPlaceholder, r.LessonID)
	body := strings.ReplaceAll(check.Body, LessonPlaceholder, r.LessonID)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	method := check.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if check.Auth && r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !statusExpected(resp.StatusCode, check.ExpectStatus) {
		return fmt.Errorf("status %d, want %v: %s", resp.StatusCode, check.ExpectStatus, truncate(string(raw), 200))
	}
	if check.ExpectBody != "" && strings.TrimSpace(string(raw)) != check.ExpectBody {
		return fmt.Errorf("body %q, want %q", truncate(string(raw), 200), check.ExpectBody)
	}
	if len(check.ExpectNonEmpty) == 0 {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	for _, key := range check.ExpectNonEmpty {
		if !nonEmpty(lookupPath(doc, key)) {
			return fmt.Errorf("field %q is empty", key)
		}
	}
	return nil
}

func statusExpected(got int, want []int) bool {
	for _, w := range want {
		if got == w {
			return true
		}
	}
	return false
}

// lookupPath resolves a dotted key ("lesson.checkInAt") in a decoded object.
func lookupPath(doc map[string]any, dotted string) any {
	var cur any = doc
	for _, part := range strings.Split(dotted, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// nonEmpty treats nil, "", false, empty arrays and empty objects as empty.
func nonEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
