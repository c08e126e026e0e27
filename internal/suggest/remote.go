package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteClient fetches suggestions from a running suggestion proxy
type RemoteClient struct {
	client *resty.Client
}

// NewRemoteClient creates a client for the proxy at baseURL, e.g.
// "http://localhost:8787"
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &RemoteClient{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Fetch implements Fetcher
func (c *RemoteClient) Fetch(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}

	var list []string
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&list).
		Get("/suggestions")
	if err != nil {
		return nil, fmt.Errorf("request proxy suggestions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("suggestion proxy returned %s", resp.Status())
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
