package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client downloads the individual schedule files served under a GTFS feed's
// base URL and parses them into row-addressable tables. Nothing is cached
// between runs.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a schedule feed client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// Trips downloads and parses trips.txt.
func (c *Client) Trips(ctx context.Context) ([]Trip, error) {
	return fetchTable[Trip](ctx, c, "trips.txt")
}

// Routes downloads and parses routes.txt.
func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	return fetchTable[Route](ctx, c, "routes.txt")
}

// StopTimes downloads and parses stop_times.txt.
func (c *Client) StopTimes(ctx context.Context) ([]StopTime, error) {
	return fetchTable[StopTime](ctx, c, "stop_times.txt")
}

func fetchTable[T any](ctx context.Context, c *Client, name string) ([]T, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Info("downloading schedule file", "url", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", name, resp.StatusCode)
	}

	rows, err := parseCSV[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	c.logger.Info("schedule file parsed", "file", name, "rows", len(rows))
	return rows, nil
}
