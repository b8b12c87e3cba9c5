package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/launch-orchestrator/internal/keys"
)

// Factory builds a single-key client.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// GeminiFactory returns a Factory producing GeminiClients with the given config.
func GeminiFactory(config *Config) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// RotatingClient implements Client over a pool of API keys. Each call uses the
// pool's current key and rotates on rate-limit failures.
type RotatingClient struct {
	rotator *keys.Rotator
	pool    keys.Pool
	factory Factory

	mu      sync.Mutex
	clients map[string]Client
}

// NewRotatingClient creates a RotatingClient. Clients are built lazily per key.
func NewRotatingClient(rotator *keys.Rotator, pool keys.Pool, factory Factory) *RotatingClient {
	return &RotatingClient{
		rotator: rotator,
		pool:    pool,
		factory: factory,
		clients: make(map[string]Client),
	}
}

// GenerateContent implements Client
func (c *RotatingClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return keys.Do(ctx, c.rotator, c.pool, func(ctx context.Context, key string) (string, error) {
		client, err := c.clientFor(ctx, key)
		if err != nil {
			return "", err
		}
		return client.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON implements Client
func (c *RotatingClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return keys.Do(ctx, c.rotator, c.pool, func(ctx context.Context, key string) (string, error) {
		client, err := c.clientFor(ctx, key)
		if err != nil {
			return "", err
		}
		return client.GenerateJSON(ctx, prompt, tier)
	})
}

// Close closes every client built so far
func (c *RotatingClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for key, client := range c.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.clients, key)
	}
	return errors.Join(errs...)
}

func (c *RotatingClient) clientFor(ctx context.Context, key string) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[key]; ok {
		return client, nil
	}
	client, err := c.factory(ctx, key)
	if err != nil {
		return nil, err
	}
	c.clients[key] = client
	return client, nil
}
