package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/jonathan/launch-orchestrator/internal/keys"
)

type fakeCSE struct {
	mu        sync.Mutex
	keysSeen  []string
	limited   map[string]bool
	forbidden map[string]bool
}

func (f *fakeCSE) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	f.mu.Lock()
	f.keysSeen = append(f.keysSeen, key)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case f.limited[key]:
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	case f.forbidden[key]:
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"daily","errors":[{"reason":"dailyLimitExceeded"}]}}`))
	case r.URL.Query().Get("q") == "bad":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Invalid value"}}`))
	default:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"title": "Agtech report", "link": "https://example.com/a", "snippet": "growing " + r.URL.Query().Get("q")},
				{"title": "Drone market", "link": "https://example.com/b", "snippet": "size"},
			},
		})
	}
}

func newSearcher(t *testing.T, fake *fakeCSE, apiKeys ...string) (*GoogleSearcher, *keys.MemoryState) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	state := keys.NewMemoryState()
	s := NewGoogleSearcher(keys.NewRotator(state, nil), apiKeys, "engine-1", option.WithEndpoint(server.URL+"/"))
	return s, state
}

func TestGoogleSearcher_Search(t *testing.T) {
	fake := &fakeCSE{}
	s, _ := newSearcher(t, fake, "key-a")

	results, err := s.Search(context.Background(), "farm drones", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Agtech report", results[0].Title)
	assert.Equal(t, "growing farm drones", results[0].Snippet)
}

func TestGoogleSearcher_RotatesOnQuota(t *testing.T) {
	fake := &fakeCSE{limited: map[string]bool{"key-a": true}, forbidden: map[string]bool{"key-b": true}}
	s, state := newSearcher(t, fake, "key-a", "key-b", "key-c")

	results, err := s.Search(context.Background(), "farm drones", 5)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"key-a", "key-b", "key-c"}, fake.keysSeen)

	idx, err := state.GetKeyIndex(context.Background(), ServiceName)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestGoogleSearcher_BadRequestDoesNotRotate(t *testing.T) {
	fake := &fakeCSE{}
	s, state := newSearcher(t, fake, "key-a", "key-b")

	_, err := s.Search(context.Background(), "bad", 5)
	require.Error(t, err)
	assert.False(t, keys.IsRateLimited(err))
	assert.Equal(t, []string{"key-a"}, fake.keysSeen)

	idx, _ := state.GetKeyIndex(context.Background(), ServiceName)
	assert.Equal(t, 0, idx)
}

func TestGoogleSearcher_NoKeys(t *testing.T) {
	s := NewGoogleSearcher(keys.NewRotator(nil, nil), nil, "cx")
	_, err := s.Search(context.Background(), "anything", 3)
	var noKeys *keys.NoKeysConfiguredError
	assert.ErrorAs(t, err, &noKeys)
}

func TestGoogleSearcher_EmptyQuery(t *testing.T) {
	s := NewGoogleSearcher(keys.NewRotator(nil, nil), []string{"k"}, "cx")
	_, err := s.Search(context.Background(), "   ", 3)
	assert.Error(t, err)
}

func TestDedupe(t *testing.T) {
	in := []Result{
		{Link: "https://a.com/"},
		{Link: "https://a.com"},
		{Link: ""},
		{Link: "https://b.com"},
	}
	out := Dedupe(in)
	require.Len(t, out, 2)
	assert.Equal(t, "https://a.com/", out[0].Link)
	assert.Equal(t, "https://b.com", out[1].Link)
}
