package config

import (
	"os"
	"strings"

	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/llm"
)

// Env holds the secrets and endpoints read from the environment
type Env struct {
	GeminiKeys      []string
	SearchKeys      []string
	SearchEngineID  string
	DatabaseURL     string
	ScorecardURL    string
	ScorecardAPIKey string
}

// LoadEnv reads provider keys and endpoints from the environment.
// GEMINI_API_KEYS and GOOGLE_SEARCH_API_KEYS are comma separated and fall
// back to the singular GEMINI_API_KEY and GOOGLE_SEARCH_API_KEY.
func LoadEnv() Env {
	return Env{
		GeminiKeys:      keyList("GEMINI_API_KEYS", "GEMINI_API_KEY"),
		SearchKeys:      keyList("GOOGLE_SEARCH_API_KEYS", "GOOGLE_SEARCH_API_KEY"),
		SearchEngineID:  strings.TrimSpace(os.Getenv("GOOGLE_SEARCH_CX")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ScorecardURL:    strings.TrimSpace(os.Getenv("SCORECARD_URL")),
		ScorecardAPIKey: strings.TrimSpace(os.Getenv("SCORECARD_API_KEY")),
	}
}

// GeminiPool returns the key pool for the language model
func (e Env) GeminiPool() keys.Pool {
	return keys.Pool{Service: llm.ServiceName, Keys: e.GeminiKeys}
}

// SearchEnabled reports whether web search can be used
func (e Env) SearchEnabled() bool {
	return len(e.SearchKeys) > 0 && e.SearchEngineID != ""
}

// ParseKeyList splits a comma separated key list, trimming blanks and
// dropping duplicates while keeping order.
func ParseKeyList(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		key := strings.TrimSpace(part)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func keyList(pluralVar, singularVar string) []string {
	if list := ParseKeyList(os.Getenv(pluralVar)); len(list) > 0 {
		return list
	}
	return ParseKeyList(os.Getenv(singularVar))
}
