package llmservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hoshin-matrix/internal/config"

	"github.com/rs/zerolog/log"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// StatusError is returned when the endpoint answers with anything but 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %d, %s", e.StatusCode, e.Body)
}

// ChatClient posts directly to an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	cfg    *config.LLMConfig
	client *http.Client
}

func NewChatClient(cfg *config.LLMConfig) *ChatClient {
	return &ChatClient{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// WithHTTPClient replaces the underlying client, mostly for tests.
func (c *ChatClient) WithHTTPClient(client *http.Client) *ChatClient {
	c.client = client
	return c
}

func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(c.cfg.Key, "Bearer "))
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("url", url).Str("model", c.cfg.Model).Msg("Posting chat completion")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode chat completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Message.Content, nil
}
