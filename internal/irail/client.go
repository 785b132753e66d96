package irail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is an HTTP client for the iRail API.
type Client struct {
	baseURL string
	lang    string
	client  *http.Client
	cache   *Cache[*ConnectionsResponse]
	logger  *slog.Logger
}

// NewClient creates an iRail API client.
func NewClient(baseURL, lang string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		lang:    lang,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:  NewCache[*ConnectionsResponse](10 * time.Minute),
		logger: logger,
	}
}

// Vehicle fetches the full stop list for one train run.
func (c *Client) Vehicle(ctx context.Context, id string) (*VehicleResponse, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("format", "json")
	params.Set("lang", c.lang)

	reqURL := fmt.Sprintf("%s/vehicle/?%s", c.baseURL, params.Encode())
	resp, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s: %w", id, err)
	}
	defer resp.Body.Close()

	var result VehicleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("vehicle %s: decode response: %w", id, err)
	}
	return &result, nil
}

// Connections fetches all departures between two stations from midnight of
// the given date onward. Station names are normalized to the ASCII slugs the
// endpoint expects. Responses are cached per station pair and date.
func (c *Client) Connections(ctx context.Context, from, to string, date time.Time) (*ConnectionsResponse, error) {
	fromSlug := StationSlug(from)
	toSlug := StationSlug(to)
	day := date.Format("020106")

	cacheKey := fmt.Sprintf("%s|%s|%s", fromSlug, toSlug, day)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("from", fromSlug)
	params.Set("to", toSlug)
	params.Set("date", day)
	params.Set("time", "0000")
	params.Set("timesel", "departure")
	params.Set("format", "json")
	params.Set("lang", c.lang)
	params.Set("alerts", "false")

	reqURL := fmt.Sprintf("%s/connections/?%s", c.baseURL, params.Encode())
	resp, err := c.doGet(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("connections %s to %s: %w", fromSlug, toSlug, err)
	}
	defer resp.Body.Close()

	var result ConnectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("connections %s to %s: decode response: %w", fromSlug, toSlug, err)
	}

	c.cache.Set(cacheKey, &result)
	return &result, nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}
