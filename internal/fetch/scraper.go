package fetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/observability"
)

// DefaultCacheTTL is how long scraped pages are reused.
const DefaultCacheTTL = 6 * time.Hour

// ScraperConfig holds configuration for a Scraper.
type ScraperConfig struct {
	Options  *Options
	CacheTTL time.Duration
	// Render is used when plain HTTP yields too little text. Nil disables the fallback.
	Render Renderer
}

// Scraper fetches pages, falls back to browser rendering for client-side
// pages, and caches results in memory.
type Scraper struct {
	options *Options
	ttl     time.Duration
	render  Renderer
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cachedPage
}

type cachedPage struct {
	page      *Page
	fetchedAt time.Time
}

// NewScraper creates a Scraper.
func NewScraper(config ScraperConfig, logger *zap.SugaredLogger) *Scraper {
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	return &Scraper{
		options: config.Options,
		ttl:     config.CacheTTL,
		render:  config.Render,
		logger:  observability.OrNop(logger),
		now:     time.Now,
		cache:   make(map[string]cachedPage),
	}
}

// Scrape returns the readable text of a page.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Page, error) {
	if page, ok := s.cached(url); ok {
		return page, nil
	}

	page, err := Get(ctx, url, s.options)
	if err != nil {
		return nil, err
	}
	page.Title, page.Text, err = ExtractText(page.HTML)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
	}

	if s.render != nil && ShouldUseBrowser(page.Text) {
		s.logger.Debugw("page text too short, rendering in browser", "url", url, "chars", len(page.Text))
		if html, rerr := s.render(ctx, url); rerr != nil {
			s.logger.Warnw("browser rendering failed", "url", url, "error", rerr)
		} else if title, text, xerr := ExtractText(html); xerr == nil && len(text) > len(page.Text) {
			page.HTML, page.Text, page.Rendered = html, text, true
			if title != "" {
				page.Title = title
			}
		}
	}

	s.store(url, page)
	return page, nil
}

// Invalidate drops a cached page.
func (s *Scraper) Invalidate(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, url)
}

func (s *Scraper) cached(url string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[url]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.fetchedAt) > s.ttl {
		delete(s.cache, url)
		return nil, false
	}
	return entry.page, true
}

func (s *Scraper) store(url string, page *Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[url] = cachedPage{page: page, fetchedAt: s.now()}
}
