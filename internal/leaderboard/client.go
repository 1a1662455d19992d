// Package leaderboard talks to the global leaderboard service and provides
// a reference implementation of that service.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// TopLimit is the number of entries in the global leaderboard.
const TopLimit = 10

// ErrNotConfigured is returned when no base URL was set.
var ErrNotConfigured = errors.New("leaderboard base URL is not configured")

// ErrNotFound is returned when a player has no score.
var ErrNotFound = errors.New("player not found")

// Score is one leaderboard row. The service encodes the score as a string.
type Score struct {
	PlayerName   string `json:"player_name"`
	HighestScore string `json:"highest_score"`
	Timestamp    int64  `json:"timestamp,omitempty"`
}

// Value parses HighestScore, treating malformed values as 0.
func (s Score) Value() int {
	v, err := strconv.Atoi(strings.TrimSpace(s.HighestScore))
	if err != nil {
		return 0
	}
	return v
}

// Client is an HTTP client for the leaderboard service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. A trailing slash is ignored.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Submit validates a finished round and posts it to /score.
func (c *Client) Submit(ctx context.Context, data tower.GameStateData) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	if err := Validate(data); err != nil {
		return err
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("leaderboard: encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("leaderboard: submit: HTTP %d", resp.StatusCode)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("leaderboard: submit: read response: %w", err)
	}
	return nil
}

// Top fetches the global leaderboard, best first, at most TopLimit rows.
func (c *Client) Top(ctx context.Context) ([]Score, error) {
	var scores []Score
	if err := c.get(ctx, "/leaderboard", &scores); err != nil {
		return nil, err
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value() > scores[j].Value()
	})
	if len(scores) > TopLimit {
		scores = scores[:TopLimit]
	}
	return scores, nil
}

// PlayerScore fetches one player's best score.
func (c *Client) PlayerScore(ctx context.Context, player string) (Score, error) {
	var s Score
	err := c.get(ctx, "/score?player_name="+url.QueryEscape(player), &s)
	return s, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("leaderboard: get %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode %s: %w", path, err)
	}
	return nil
}
