package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"chainboard/pkg/errors"
)

// Client proxies dashboard chat messages to a configurable upstream bot API
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewClient creates a new chat client
func NewClient(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		apiKey:     apiKey,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Ask sends a user message upstream and returns the normalized reply text
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "empty chat message")
	}
	if c.url == "" {
		return "", errors.Wrap(errors.ErrUpstreamUnavailable, "chat upstream not configured")
	}

	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUpstreamUnavailable, "chat upstream: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(errors.ErrUpstreamUnavailable, "chat upstream returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUpstreamUnavailable, "read chat response: %v", err)
	}

	return NormalizeReply(raw)
}
