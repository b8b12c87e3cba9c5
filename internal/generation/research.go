package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/launch-orchestrator/internal/fetch"
	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/prompts"
	"github.com/jonathan/launch-orchestrator/internal/search"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Searcher runs web searches.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}

// Scraper returns the readable text of a page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*fetch.Page, error)
}

// maxExcerpt caps how much scraped page text goes into a prompt.
const maxExcerpt = 1500

// truncateRunes cuts s to at most limit bytes without splitting a rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Researched returns a routine that grounds the prompt in web search results
// (and, when scrape is set, the text of the top result pages) before asking
// the model for a T. Individual search or scrape failures are tolerated, but
// an exhausted key pool or a total search outage fails the routine. Without a
// searcher it behaves like JSON.
func Researched[T any](field types.Field, tier llm.ModelTier, scrape bool) Routine {
	return func(ctx context.Context, g *Generator, in Inputs) (any, error) {
		research, err := g.research(ctx, field, in, scrape)
		if err != nil {
			return nil, err
		}
		return generate[T](ctx, g, field, tier, in, research)
	}
}

func (g *Generator) research(ctx context.Context, field types.Field, in Inputs, scrape bool) (string, error) {
	if g.Search == nil {
		return "", nil
	}
	queries := prompts.ResearchQueries(field.String(), map[string]string{
		"Idea":        in.Idea,
		"StartupName": in.StartupName,
	})
	if len(queries) == 0 {
		return "", nil
	}

	results, err := g.searchAll(ctx, queries)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	var pages []*fetch.Page
	if scrape && g.Scraper != nil {
		pages, err = g.scrapeTop(ctx, results)
		if err != nil {
			return "", err
		}
	}
	return formatResearch(results, pages), nil
}

// searchAll runs queries concurrently and returns deduplicated results in query
// order. A failed query is skipped, but when the key pool is exhausted or
// unconfigured, or every query failed, the error is returned.
func (g *Generator) searchAll(ctx context.Context, queries []string) ([]search.Result, error) {
	perQuery := make([][]search.Result, len(queries))
	errs := make([]error, len(queries))

	var eg errgroup.Group
	eg.SetLimit(g.concurrency())
	for i, q := range queries {
		eg.Go(func() error {
			results, err := g.Search.Search(ctx, q, g.ResultsPerQuery)
			if err != nil {
				g.logger().Warnw("search failed", "query", q, "error", err)
				errs[i] = err
				return nil
			}
			perQuery[i] = results
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		if isPoolFailure(err) {
			return nil, fmt.Errorf("research search failed: %w", err)
		}
		failed++
	}
	if failed == len(queries) {
		return nil, fmt.Errorf("all %d research searches failed: %w", failed, errs[0])
	}

	var all []search.Result
	for _, rs := range perQuery {
		all = append(all, rs...)
	}
	return search.Dedupe(all), nil
}

// isPoolFailure reports errors that every other query would hit as well.
func isPoolFailure(err error) bool {
	var exhausted *keys.AllKeysExhaustedError
	var noKeys *keys.NoKeysConfiguredError
	return errors.As(err, &exhausted) || errors.As(err, &noKeys)
}

func (g *Generator) scrapeTop(ctx context.Context, results []search.Result) ([]*fetch.Page, error) {
	limit := g.ScrapeLimit
	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}

	pages := make([]*fetch.Page, limit)
	var eg errgroup.Group
	eg.SetLimit(g.concurrency())
	for i, r := range results[:limit] {
		eg.Go(func() error {
			page, err := g.Scraper.Scrape(ctx, r.Link)
			if err != nil {
				g.logger().Debugw("scrape failed", "url", r.Link, "error", err)
				return nil
			}
			pages[i] = page
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := pages[:0]
	for _, p := range pages {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *Generator) concurrency() int {
	if g.MaxConcurrency <= 0 {
		return 1
	}
	return g.MaxConcurrency
}

func formatResearch(results []search.Result, pages []*fetch.Page) string {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", r.Title, r.Link, r.Snippet)
	}
	for _, p := range pages {
		text := truncateRunes(p.Text, maxExcerpt)
		fmt.Fprintf(&sb, "\nPage %s (%s):\n%s\n", p.Title, p.URL, text)
	}
	return strings.TrimSpace(sb.String())
}
