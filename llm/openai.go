package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"autoblog/config"
)

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint.
// Gemini exposes the same API, which makes it the default provider.
type OpenAICompleter struct {
	client   *http.Client
	provider string
	apiKey   string
	apiURL   string
	model    string
}

// NewOpenAICompleter creates a completer for cfg.APIURL + /chat/completions.
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1"
	}
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderOpenAI
	}
	return &OpenAICompleter{
		client:   &http.Client{Timeout: timeout},
		provider: provider,
		apiKey:   cfg.APIKey,
		apiURL:   apiURL,
		model:    cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := c.complete(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Provider: c.provider, Cause: err}
	}
	return text, nil
}

func (c *OpenAICompleter) complete(ctx context.Context, prompt string) (string, error) {
	if c.model == "" {
		return "", errors.New("model is required")
	}
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
