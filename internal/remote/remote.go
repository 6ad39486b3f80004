// Package remote fetches task lists over HTTP for the download command.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MiladSamani/TaskManager/internal/task"
)

// maxResponseBytes caps the download size; the store is a small flat file
// and anything larger is a misconfigured URL.
const maxResponseBytes = 8 << 20

// Client downloads task lists.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchTasks downloads and decodes a JSON array of tasks from url.
func (c *Client) FetchTasks(ctx context.Context, url string) ([]task.Task, error) {
	if url == "" {
		return nil, fmt.Errorf("download url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	tasks, err := task.ParseTasks(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return tasks, nil
}
