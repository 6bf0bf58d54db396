package marketing

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/tinymillion/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// Sitemap caching
const (
	SitemapCacheKey = "sitemap.xml"
	SitemapCacheTTL = time.Hour
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// lastmod is written the way browsers print Date.toISOString
const lastmodLayout = "2006-01-02T15:04:05.000Z"

// SitemapCache stores the rendered sitemap between requests
type SitemapCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ActiveProductLister lists the products that get a sitemap entry
type ActiveProductLister interface {
	ListActive(ctx context.Context) ([]*catalog.Product, error)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type staticPage struct {
	path       string
	changeFreq string
	priority   float64
}

var staticPages = []staticPage{
	{path: "/", changeFreq: "daily", priority: 1.0},
	{path: "/collection", changeFreq: "weekly", priority: 0.8},
	{path: "/about", changeFreq: "yearly", priority: 0.3},
	{path: "/contact", changeFreq: "yearly", priority: 0.3},
}

// SEOService renders sitemap.xml and robots.txt for the storefront
type SEOService struct {
	products ActiveProductLister
	cache    SitemapCache
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewSEOService creates a new SEOService. Trailing slashes are trimmed from
// baseURL; cache may be nil.
func NewSEOService(products ActiveProductLister, cache SitemapCache, baseURL string, logger *zap.Logger) *SEOService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SEOService{
		products: products,
		cache:    cache,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		now:      time.Now,
	}
}

// Sitemap returns the sitemap document, served from cache for an hour
func (s *SEOService) Sitemap(ctx context.Context) (string, error) {
	if s.cache != nil {
		doc, ok, err := s.cache.Get(ctx, SitemapCacheKey)
		if err != nil {
			s.logger.Warn("Sitemap cache read failed", zap.Error(err))
		} else if ok {
			return doc, nil
		}
	}

	doc, err := s.build(ctx)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, SitemapCacheKey, doc, SitemapCacheTTL); err != nil {
			s.logger.Warn("Sitemap cache write failed", zap.Error(err))
		}
	}
	return doc, nil
}

// Robots returns robots.txt pointing crawlers at the sitemap
func (s *SEOService) Robots() string {
	return strings.Join([]string{
		"User-agent: *",
		"Disallow: /admin/",
		"Disallow: /cart",
		"Disallow: /checkout",
		"Allow: /",
		"Sitemap: " + s.baseURL + "/sitemap.xml",
	}, "\n")
}

func (s *SEOService) build(ctx context.Context) (string, error) {
	now := s.now()
	set := urlSet{Xmlns: sitemapNamespace}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, s.entry(page.path, page.changeFreq, page.priority, now))
	}

	// Product pages are best effort; the static pages are always served.
	products, err := s.products.ListActive(ctx)
	if err != nil {
		s.logger.Error("Sitemap product lookup failed", zap.Error(err))
	}
	for _, p := range products {
		lastmod := p.UpdatedAt
		if lastmod.IsZero() {
			lastmod = now
		}
		set.URLs = append(set.URLs, s.entry(p.SitemapPath(), "weekly", 0.8, lastmod))
	}

	body, err := xml.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("failed to render sitemap: %w", err)
	}
	return xml.Header + string(body), nil
}

func (s *SEOService) entry(path, changeFreq string, priority float64, lastmod time.Time) sitemapURL {
	return sitemapURL{
		Loc:        s.baseURL + path,
		LastMod:    lastmod.UTC().Format(lastmodLayout),
		ChangeFreq: changeFreq,
		Priority:   fmt.Sprintf("%.1f", priority),
	}
}
