package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoblog/config"
	"autoblog/types"
)

// InstagramClient publishes image posts through the Graph API: create a
// media container, then publish it.
type InstagramClient struct {
	client      *http.Client
	graphURL    string
	accountID   string
	accessToken string
	imageURL    string
}

// NewInstagramClient returns a *config.ConfigurationError when the token or
// business account is missing.
func NewInstagramClient(cfg *config.Config) (*InstagramClient, error) {
	if err := cfg.RequireInstagram(); err != nil {
		return nil, err
	}
	imageURL := cfg.Instagram.ImageURL
	if imageURL == "" {
		imageURL = config.DefaultPlaceholderImage
	}
	return &InstagramClient{
		client:      &http.Client{Timeout: 60 * time.Second},
		graphURL:    strings.TrimRight(cfg.Instagram.GraphURL, "/"),
		accountID:   cfg.Instagram.AccountID,
		accessToken: cfg.Instagram.AccessToken,
		imageURL:    imageURL,
	}, nil
}

// Name implements Platform.
func (c *InstagramClient) Name() string { return types.PlatformInstagram }

// Deliver implements Platform. Both calls must return an id.
func (c *InstagramClient) Deliver(ctx context.Context, caption string) error {
	creationID, err := c.post(ctx, "media", url.Values{
		"image_url":    {c.imageURL},
		"caption":      {caption},
		"access_token": {c.accessToken},
	})
	if err != nil {
		return fmt.Errorf("instagram: create container: %w", err)
	}
	if _, err := c.post(ctx, "media_publish", url.Values{
		"creation_id":  {creationID},
		"access_token": {c.accessToken},
	}); err != nil {
		return fmt.Errorf("instagram: publish %s: %w", creationID, err)
	}
	return nil
}

type graphResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (c *InstagramClient) post(ctx context.Context, edge string, form url.Values) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.graphURL, url.PathEscape(c.accountID), edge)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", err
	}
	var parsed graphResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("status %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("graph error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("status %s: response has no id", resp.Status)
	}
	return parsed.ID, nil
}
