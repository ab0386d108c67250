package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"autoblog/config"
)

// CohereCompleter uses the Cohere Chat API.
type CohereCompleter struct {
	client *cohereclient.Client
	model  string
}

// NewCohereCompleter creates a Cohere client authenticated with cfg.APIKey.
func NewCohereCompleter(cfg config.LLMConfig) *CohereCompleter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	// Force HTTP/1.1; the Cohere edge resets long HTTP/2 streams
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereCompleter{client: client, model: cfg.Model}
}

// Complete implements Completer.
func (c *CohereCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.model
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return "", &GenerationError{Provider: config.ProviderCohere, Cause: err}
	}
	if resp == nil {
		return "", &GenerationError{Provider: config.ProviderCohere, Cause: errors.New("empty response")}
	}
	return resp.Text, nil
}
