// Package resolver maps a free-text product name to a best-guess
// destination URL by scraping a search engine's HTML results page.
// Resolution degrades gracefully: when no result can be extracted the
// caller still gets a constructed search URL, never a dead end.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrEmptyProduct is returned when the product name is missing.
var ErrEmptyProduct = errors.New("product query param required")

const (
	searchEndpoint = "https://duckduckgo.com/html/"
	userAgent      = "glowbot-resolver/1.0"

	connectTimeout = 10 * time.Second
	searchTimeout  = 30 * time.Second
)

// DefaultBrandDomains restricts searches to the official brand sites.
var DefaultBrandDomains = []string{"lorealparis.com", "loreal.com"}

// SearchResultExtractor pulls the first organic result link out of a
// search engine's HTML. Scraping markup is inherently brittle, so the
// extraction is kept behind this narrow interface and injectable for
// fixture-driven tests.
type SearchResultExtractor interface {
	FirstResult(html string) (string, bool)
}

// DuckDuckGoExtractor extracts the first result__a anchor from a
// DuckDuckGo HTML results page.
type DuckDuckGoExtractor struct{}

var resultAnchor = regexp.MustCompile(`(?i)<a[^>]+class="result__a"[^>]+href="([^"]+)"`)

// FirstResult returns the href of the first organic result, made
// absolute when DuckDuckGo hands back a relative redirect URL.
func (DuckDuckGoExtractor) FirstResult(html string) (string, bool) {
	m := resultAnchor.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	href := m[1]
	if strings.HasPrefix(href, "/") {
		href = "https://duckduckgo.com" + href
	}
	return href, true
}

// Service resolves product names via a search engine fetch.
type Service struct {
	httpClient *http.Client
	extractor  SearchResultExtractor
	domains    []string
	searchURL  string
	logger     zerolog.Logger
}

// New creates a resolver restricted to the given brand domains. A nil
// or empty domain list falls back to DefaultBrandDomains.
func New(domains []string, logger zerolog.Logger) *Service {
	if len(domains) == 0 {
		domains = DefaultBrandDomains
	}
	return &Service{
		httpClient: &http.Client{
			Timeout: searchTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   connectTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		extractor: DuckDuckGoExtractor{},
		domains:   domains,
		logger:    logger,
	}
}

// WithExtractor overrides the result extractor, for tests.
func (s *Service) WithExtractor(e SearchResultExtractor) *Service {
	s.extractor = e
	return s
}

// WithSearchEndpoint overrides the search engine endpoint, for tests.
func (s *Service) WithSearchEndpoint(endpoint string) *Service {
	s.searchURL = endpoint
	return s
}

func (s *Service) endpoint() string {
	if s.searchURL != "" {
		return s.searchURL
	}
	return searchEndpoint
}

// Resolve maps a product name to a destination URL. Extraction misses
// fall back to a constructed search URL; only a missing product name or
// a failed search fetch produce an error.
func (s *Service) Resolve(ctx context.Context, product string) (string, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return "", ErrEmptyProduct
	}

	searchURL := s.endpoint() + "?q=" + url.QueryEscape(s.query(product))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read search response: %w", err)
	}

	if target, ok := s.extractor.FirstResult(string(body)); ok {
		return target, nil
	}

	s.logger.Debug().Str("product", product).Msg("no organic result extracted, using fallback search URL")
	return s.FallbackURL(product), nil
}

// FallbackURL builds the deterministic search-results URL used whenever
// a direct product page cannot be found.
func (s *Service) FallbackURL(product string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(s.query(product))
}

func (s *Service) query(product string) string {
	parts := make([]string, len(s.domains))
	for i, d := range s.domains {
		parts[i] = "site:" + d
	}
	return strings.Join(parts, " OR ") + " " + product
}
