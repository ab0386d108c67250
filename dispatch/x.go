package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"

	"autoblog/config"
	"autoblog/types"
)

// XClient posts with the X API v2 using OAuth 1.0a user context.
type XClient struct {
	client   *http.Client
	endpoint string
}

// NewXClient signs requests with the configured consumer key and access
// token. Missing credentials are a *config.ConfigurationError.
func NewXClient(cfg *config.Config) (*XClient, error) {
	if err := cfg.RequireX(); err != nil {
		return nil, err
	}
	oauthConfig := oauth1.NewConfig(cfg.X.APIKey, cfg.X.APISecret)
	token := oauth1.NewToken(cfg.X.AccessToken, cfg.X.AccessSecret)
	return &XClient{
		client:   oauthConfig.Client(oauth1.NoContext, token),
		endpoint: cfg.X.Endpoint,
	}, nil
}

// Name implements Platform.
func (c *XClient) Name() string { return types.PlatformX }

// Deliver implements Platform. Only 201 Created counts as success.
func (c *XClient) Deliver(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("x: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return nil
}
