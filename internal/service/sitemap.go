package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"github.com/pkordes/bizsite/internal/domain"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapPageSize  = 100
	sitemapDate      = "2006-01-02"
)

// sitemapPage is a fixed marketing page of the main site.
type sitemapPage struct {
	Path       string
	Priority   string
	ChangeFreq string
}

var staticPages = []sitemapPage{
	{"/", "1.0", "daily"},
	{"/about", "0.8", "monthly"},
	{"/pricing", "0.9", "weekly"},
	{"/contact", "0.7", "monthly"},
	{"/businesses", "0.9", "daily"},
	{"/blog", "0.8", "weekly"},
	{"/terms", "0.5", "yearly"},
	{"/privacy", "0.5", "yearly"},
	{"/services/website-design", "0.8", "monthly"},
	{"/services/website-hosting", "0.8", "monthly"},
	{"/services/online-presence", "0.8", "monthly"},
}

// approvedLister pages through businesses by status.
type approvedLister interface {
	ListByStatus(ctx context.Context, status domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error)
}

// SitemapService renders the XML sitemap of the main site.
type SitemapService struct {
	businesses approvedLister
	siteURL    string
	log        *slog.Logger
	now        func() time.Time
}

// NewSitemapService constructs a SitemapService that builds absolute URLs from siteURL.
func NewSitemapService(businesses approvedLister, siteURL string, log *slog.Logger) *SitemapService {
	if log == nil {
		log = slog.Default()
	}
	return &SitemapService{businesses: businesses, siteURL: siteURL, log: log, now: time.Now}
}

// Build returns the sitemap document: every static page, then one entry per
// approved business. If businesses cannot be loaded the static part is still
// returned and the failure is logged.
func (s *SitemapService) Build(ctx context.Context) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	today := s.now().UTC().Format(sitemapDate)
	for _, p := range staticPages {
		addURL(urlset, s.siteURL+p.Path, today, p.ChangeFreq, p.Priority)
	}

	businesses, err := s.approved(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "sitemap without businesses", "error", err)
	}
	for _, b := range businesses {
		if b.Slug == "" {
			continue
		}
		lastmod := b.UpdatedAt
		if lastmod.IsZero() {
			lastmod = b.CreatedAt
		}
		if lastmod.IsZero() {
			lastmod = s.now()
		}
		addURL(urlset, s.siteURL+"/"+b.Slug, lastmod.UTC().Format(sitemapDate), "weekly", "0.7")
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("service.SitemapService.Build: %w", err)
	}
	return buf.Bytes(), nil
}

// approved loads every approved business page by page.
func (s *SitemapService) approved(ctx context.Context) ([]domain.Business, error) {
	var all []domain.Business
	for page := 1; ; page++ {
		items, total, err := s.businesses.ListByStatus(ctx, domain.StatusApproved, domain.PaginationParams{Page: page, Limit: sitemapPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func addURL(urlset *etree.Element, loc, lastmod, changefreq, priority string) {
	u := urlset.CreateElement("url")
	u.CreateElement("loc").SetText(loc)
	u.CreateElement("lastmod").SetText(lastmod)
	u.CreateElement("changefreq").SetText(changefreq)
	u.CreateElement("priority").SetText(priority)
}
