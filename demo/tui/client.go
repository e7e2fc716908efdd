package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"contentbot/types"
)

// BotClient is a thin HTTP client for the bot API.
type BotClient struct {
	baseURL string
	client  *http.Client
}

// NewBotClient creates a new bot API client.
func NewBotClient(baseURL string) *BotClient {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &BotClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ProcessResult is the API's verdict for one chat message.
type ProcessResult struct {
	Outcome  string                  `json:"outcome"`
	Analysis *types.IntentAnalysis   `json:"analysis,omitempty"`
	Request  *types.Request          `json:"request,omitempty"`
	Matches  []types.SimilarityMatch `json:"matches,omitempty"`
}

// ProcessMessage sends one chat message through the bot pipeline.
func (c *BotClient) ProcessMessage(userID, text string) (*ProcessResult, error) {
	payload, err := json.Marshal(map[string]string{"user_id": userID, "text": text})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Post(c.baseURL+"/api/analyze/message", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to process message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result ProcessResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Health checks whether the bot API is reachable.
func (c *BotClient) Health() error {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("failed to reach bot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}
