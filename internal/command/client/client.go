package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lwmacct/251207-go-pkg-stringity/internal/config"
)

// Ops 服务端 /v1 下可调用的操作。
var Ops = []string{"slice", "trim", "count", "classify", "format", "unicode"}

// ErrUnknownOp 表示 call 的操作名不在 [Ops] 中。
var ErrUnknownOp = errors.New("unknown operation")

// baseBackoff 第一次重试前的等待时间，之后逐次翻倍。
var baseBackoff = 200 * time.Millisecond

// APIError 服务端返回的非 2xx 响应。
type APIError struct {
	Status  int
	Message string
	Kind    string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Kind, e.Message)
	}

	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client 带重试的 HTTP 客户端。
type Client struct {
	base    string
	retries int
	http    *http.Client
}

// New 按 ClientConfig 创建客户端。
func New(cfg config.ClientConfig) *Client {
	return &Client{
		base:    strings.TrimRight(cfg.URL, "/"),
		retries: max(cfg.Retries, 0),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Get 请求 path 并返回响应体。
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Call 以 JSON body 调用 /v1/<op> 并返回响应体。
func (c *Client) Call(ctx context.Context, op string, body []byte) ([]byte, error) {
	known := false
	for _, o := range Ops {
		if o == op {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON body for %s", op)
	}

	return c.do(ctx, http.MethodPost, "/v1/"+op, body)
}

// do 在网络错误或 5xx 时重试，等待期间响应 ctx 取消。
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.base + path

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := baseBackoff << (attempt - 1)
			slog.Debug("Retrying request", "url", url, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		data, retry, err := c.once(ctx, method, url, body)
		if err == nil {
			return data, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}

func (c *Client) once(ctx context.Context, method, url string, body []byte) ([]byte, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}

		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		var payload struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message, apiErr.Kind = payload.Error, payload.Kind
		}

		return nil, resp.StatusCode >= http.StatusInternalServerError, apiErr
	}

	return data, false, nil
}
