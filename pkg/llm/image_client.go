package llm

import (
	"context"
	"fmt"
)

// ImageGenerator produces exactly one image URL for a prompt. Providers
// with other response shapes normalize to this contract.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, model string) (string, error)
}

type MultiProviderImageClient struct {
	providers map[string]ImageGenerator
}

func NewMultiProviderImageClient(providers map[string]ImageGenerator) *MultiProviderImageClient {
	return &MultiProviderImageClient{
		providers: providers,
	}
}

func (c *MultiProviderImageClient) GenerateImage(ctx context.Context, prompt string, model string) (string, error) {
	provider, ok := c.providers[model]
	if !ok {
		return "", fmt.Errorf("no provider found for model: %s", model)
	}

	return provider.GenerateImage(ctx, prompt, model)
}
