// Package apiclient содержит типизированный HTTP-клиент CMS-бэкенда.
//
// Клиент не хранит токен: bearer-токен берётся из контекста запроса
// (reqctx.WithUser), поэтому один экземпляр обслуживает все сессии.
// Все ответы бэкенда приходят в конверте {message, data, success}.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"collegeadmin/internal/models"
	"collegeadmin/internal/reqctx"
)

const (
	collegesPrefix = "/cms/colleges"
	contentsPrefix = "/cms/contents"
	authPrefix     = "/auth"
)

// APIError — ответ бэкенда со статусом >= 400 или success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: status=%d", e.Status)
	}
	return fmt.Sprintf("API error: status=%d, message=%s", e.Status, e.Message)
}

// IsUnauthorized — токен отсутствует, истёк или отозван бэкендом.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ErrorMessage возвращает текст для уведомления пользователю.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}

// Client безопасен для конкурентного использования.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// seg экранирует id для подстановки в путь.
func seg(id string) string {
	return url.PathEscape(id)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := reqctx.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid, ok := reqctx.GetRequestID(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}
	return req, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, bodyReader, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// call выполняет запрос и раскрывает конверт в target (может быть nil).
func call[T any](ctx context.Context, c *Client, method, path string, body any, target *T) error {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeResponse(resp, target)
}

func decodeResponse[T any](resp *http.Response, target *T) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env models.Response[json.RawMessage]
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if !env.Success && resp.StatusCode != http.StatusNoContent {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if target != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
