// Package search queries Google Custom Search with rotating API keys.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/launch-orchestrator/internal/keys"
)

// ServiceName is the key pool name used for rotation state
const ServiceName = "google_search"

// MaxResults is the largest page Custom Search returns per query
const MaxResults = 10

// Result is a single search hit
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher runs web searches
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// GoogleSearcher implements Searcher over the Custom Search JSON API
type GoogleSearcher struct {
	rotator *keys.Rotator
	pool    keys.Pool
	cx      string
	opts    []option.ClientOption

	mu       sync.Mutex
	services map[string]*customsearch.Service
}

// NewGoogleSearcher creates a searcher for the given engine id. Extra client
// options are appended to every per-key service.
func NewGoogleSearcher(rotator *keys.Rotator, apiKeys []string, cx string, opts ...option.ClientOption) *GoogleSearcher {
	return &GoogleSearcher{
		rotator:  rotator,
		pool:     keys.Pool{Service: ServiceName, Keys: apiKeys},
		cx:       cx,
		opts:     opts,
		services: make(map[string]*customsearch.Service),
	}
}

// Search implements Searcher
func (s *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	return keys.Do(ctx, s.rotator, s.pool, func(ctx context.Context, key string) ([]Result, error) {
		svc, err := s.service(ctx, key)
		if err != nil {
			return nil, err
		}
		resp, err := svc.Cse.List().Cx(s.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
		if err != nil {
			return nil, classifyError(fmt.Errorf("search %q failed: %w", query, err))
		}

		results := make([]Result, 0, len(resp.Items))
		for _, item := range resp.Items {
			results = append(results, Result{Title: item.Title, Link: item.Link, Snippet: item.Snippet})
		}
		return results, nil
	})
}

func (s *GoogleSearcher) service(ctx context.Context, key string) (*customsearch.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc, ok := s.services[key]; ok {
		return svc, nil
	}
	opts := append([]option.ClientOption{option.WithAPIKey(key)}, s.opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	s.services[key] = svc
	return svc, nil
}

// quotaReasons are googleapi error reasons that signal an exhausted key
var quotaReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
	"quotaExceeded":         true,
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return &keys.RateLimitError{Service: ServiceName, Cause: err}
	}
	if apiErr.Code == http.StatusForbidden {
		for _, item := range apiErr.Errors {
			if quotaReasons[item.Reason] {
				return &keys.RateLimitError{Service: ServiceName, Cause: err}
			}
		}
	}
	return err
}

// Dedupe drops results whose link was already seen, preserving order
func Dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		key := strings.TrimSuffix(r.Link, "/")
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
