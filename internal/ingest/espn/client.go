package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

const (
	BaseURL     = "https://site.api.espn.com/apis/v2/sports"
	BaseballMLB = "baseball/mlb"
)

// Client handles ESPN API requests
// Note: Uses curl internally because ESPN blocks Go's HTTP client fingerprint
type Client struct {
	baseURL string
}

// New creates a new ESPN API client with a custom base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
	}
}

// NewClient creates a new ESPN API client with default settings
func NewClient() *Client {
	return New(BaseURL)
}

// FetchStandings fetches league standings for a season. If date is zero,
// fetches the current standings; otherwise the standings as of that date.
func (c *Client) FetchStandings(ctx context.Context, sportPath string, seasonYear int, date time.Time) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/standings?season=%d&level=1", c.baseURL, sportPath, seasonYear)
	if !date.IsZero() {
		url = fmt.Sprintf("%s&date=%s", url, date.Format("20060102"))
	}

	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request using curl
// ESPN blocks Go's HTTP client but curl works reliably
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", url)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	// Check if we got HTML error page (403, 404, etc.)
	if len(output) > 0 && output[0] == '<' {
		log.Printf("[espn-client] HTML error page from %s", url)
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, string(output[:min(len(output), 200)]))
	}

	return result, nil
}
