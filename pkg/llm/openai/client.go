package openai

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

	"github.com/finddreams/find-dreams/pkg/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	enhanceMaxTokens   = 800
	enhanceTemperature = 0.8

	// enhanceSystemPrompt asks for a long descriptive rewrite of the seed.
	enhanceSystemPrompt = `You are an AI image generation assistant. Rewrite the user's idea into one long, detailed, visual description for an image generation model. Focus on:

- Clear visual elements (colors, composition, lighting, style)
- Specific artistic techniques or photographic styles when relevant
- Safe, appropriate content only

Respond with the rewritten prompt text and nothing else.`
)

type client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

type Option func(*client)

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.hc = hc
	}
}

func NewClient(apiKey string, opts ...Option) (*client, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	c := &client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// EnhancePrompt rewrites seed into a richer descriptive prompt via the
// chat completions endpoint.
func (c *client) EnhancePrompt(ctx context.Context, model, seed string) (string, error) {
	reqBody, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatCompletionMessage{
			{Role: chatMessageRoleSystem, Content: enhanceSystemPrompt},
			{Role: chatMessageRoleUser, Content: seed},
		},
		MaxTokens:   enhanceMaxTokens,
		Temperature: enhanceTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	respBody, err := c.post(ctx, c.baseURL+"/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parsing chat completion response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty completion content")
	}
	return content, nil
}

// GenerateImage calls the image generations endpoint and returns the
// single produced image URL, normalizing the data[0].url response shape.
func (c *client) GenerateImage(ctx context.Context, prompt string, model string) (string, error) {
	reqBody, err := json.Marshal(imageGenerationRequest{
		Model:  model,
		Prompt: prompt,
		N:      1,
		Size:   string(domain.Size1024x1024),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	respBody, err := c.post(ctx, c.baseURL+"/images/generations", reqBody)
	if err != nil {
		return "", err
	}

	var resp imageGenerationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parsing image generation response: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("no image url in response")
	}
	return resp.Data[0].URL, nil
}

func (c *client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return respBody, nil
}
