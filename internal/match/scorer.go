// Package match talks to the external scoring capability. The score itself
// is opaque here: this package only requests it and hands it on.
package match

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Scorer computes a 0-100 fit score between a participant and a job.
type Scorer interface {
	Score(ctx context.Context, userID, jobID string) (int, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, userID, jobID string) (int, error)

func (f ScorerFunc) Score(ctx context.Context, userID, jobID string) (int, error) {
	return f(ctx, userID, jobID)
}

// Client is an HTTP implementation of Scorer. Calls are made once per
// lookup; failures are surfaced to the caller without retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

func (c *Client) Score(ctx context.Context, userID, jobID string) (int, error) {
	body, err := json.Marshal(scoreRequest{UserID: userID, JobID: jobID})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/match-score", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("score request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("score request: unexpected status %d", res.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}
	if out.Score < 0 {
		out.Score = 0
	}
	if out.Score > 100 {
		out.Score = 100
	}
	return out.Score, nil
}
