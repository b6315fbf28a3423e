package samurai

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
)

// The samurai gateway fronts several hosted image models behind one
// endpoint; it authenticates with a static key header and replies with a
// flat {image_url} body.

const imagePath = "/ai/image"

type imageRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type imageResponse struct {
	ImageURL string `json:"image_url"`
}

type client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.hc = hc
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) (*client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url cannot be empty")
	}
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	c := &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateImage normalizes the gateway's {image_url} response shape to
// the canonical single-URL contract.
func (c *client) GenerateImage(ctx context.Context, prompt string, model string) (string, error) {
	reqBody, err := json.Marshal(imageRequest{Prompt: prompt, Model: model})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+imagePath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var imageResp imageResponse
	if err := json.Unmarshal(respBody, &imageResp); err != nil {
		return "", fmt.Errorf("parsing image response: %w", err)
	}
	if imageResp.ImageURL == "" {
		return "", errors.New("no image url in response")
	}
	return imageResp.ImageURL, nil
}
