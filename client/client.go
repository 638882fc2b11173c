package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTimeout = 3 * time.Second
)

// Status is a single posted item as the remote service reports it.
type Status struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Account is the remote profile that owns the board's timeline.
type Account struct {
	ID       string `json:"id"`
	Handle   string `json:"handle"`
	Display  string `json:"display_name"`
	Statuses int64  `json:"statuses_count"`
}

// APIError is a non-2xx response from the remote service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the remote refused the call for quota reasons.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Client talks to the social status API the board posts through. Account
// lookups are cached; statuses never are, the feed cache owns that policy.
type Client struct {
	client  *http.Client
	cache   *cache.Cache
	baseURL string
	token   string
}

func New(baseURL, token string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	return &Client{
		client:  &httpClient,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		baseURL: baseURL,
		token:   token,
	}
}

// PostStatus publishes text to the remote service and returns the created
// status. Not idempotent; callers must not retry on failure.
func (c *Client) PostStatus(ctx context.Context, text string) (Status, error) {
	body := map[string]string{"text": text}

	var status Status
	err := c.do(ctx, http.MethodPost, "/v2/statuses", body, &status)
	if err != nil {
		return Status{}, err
	}

	if status.CreatedAt.IsZero() {
		status.CreatedAt = time.Now().UTC()
	}

	return status, nil
}

// ListRecent fetches up to limit most recent statuses for an account,
// newest first as the remote returns them.
func (c *Client) ListRecent(ctx context.Context, accountRef string, limit int) ([]Status, error) {
	path := fmt.Sprintf("/v2/accounts/%s/statuses?limit=%d", accountRef, limit)

	var statuses []Status
	err := c.do(ctx, http.MethodGet, path, nil, &statuses)
	if err != nil {
		return nil, err
	}

	return statuses, nil
}

// GetAccount resolves an account profile, served from cache when possible.
func (c *Client) GetAccount(ctx context.Context, accountRef string) (Account, error) {
	cacheKey := "account:" + accountRef
	if x, found := c.cache.Get(cacheKey); found {
		return x.(Account), nil
	}

	var account Account
	err := c.do(ctx, http.MethodGet, "/v2/accounts/"+accountRef, nil, &account)
	if err != nil {
		return Account{}, err
	}

	c.cache.Set(cacheKey, account, cache.DefaultExpiration)

	return account, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return string(body)
}
