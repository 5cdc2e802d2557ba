// Package site renders the public micro-site of an approved business.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yosssi/gohtml"

	"github.com/pkordes/bizsite/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the micro-site templates. It is safe for concurrent use.
type Renderer struct {
	business *template.Template
	notFound *template.Template
	homeURL  string
	trackURL string
}

// NewRenderer parses the embedded templates. homeURL is linked from the
// not-found page; trackURL receives analytics beacons from rendered pages.
func NewRenderer(homeURL, trackURL string) (*Renderer, error) {
	business, err := template.ParseFS(templateFS, "templates/business.html")
	if err != nil {
		return nil, fmt.Errorf("site.NewRenderer: business template: %w", err)
	}
	notFound, err := template.ParseFS(templateFS, "templates/notfound.html")
	if err != nil {
		return nil, fmt.Errorf("site.NewRenderer: not found template: %w", err)
	}
	return &Renderer{business: business, notFound: notFound, homeURL: homeURL, trackURL: trackURL}, nil
}

type hoursRow struct {
	Day   string
	Open  bool
	Start string
	End   string
}

type businessPage struct {
	Business domain.Business
	Address  string
	Rating   string
	PhoneURL template.URL
	Hours    []hoursRow
	TrackURL string
}

// Business writes the micro-site of b to w.
func (r *Renderer) Business(w io.Writer, b domain.Business) error {
	page := businessPage{
		Business: b,
		Address:  joinNonEmpty(", ", b.Address, b.City, b.State, b.PostalCode, b.Country),
		TrackURL: r.trackURL,
	}
	if b.Rating != nil {
		page.Rating = fmt.Sprintf("%.1f", *b.Rating)
	}
	if dial := dialString(b.PhoneNumber); dial != "" {
		// Only digits and a leading plus survive, so the tel: URL is safe.
		page.PhoneURL = template.URL("tel:" + dial)
	}
	if b.Hours != nil {
		for _, d := range domain.Weekdays {
			h, ok := b.Hours[d]
			if !ok {
				continue
			}
			page.Hours = append(page.Hours, hoursRow{
				Day:   strings.ToUpper(d[:1]) + d[1:],
				Open:  h.Open,
				Start: h.Start,
				End:   h.End,
			})
		}
	}
	return r.render(w, r.business, page)
}

// NotFound writes the page shown for unknown or unpublished slugs.
func (r *Renderer) NotFound(w io.Writer, slug string) error {
	return r.render(w, r.notFound, struct {
		Slug    string
		HomeURL string
	}{slug, r.homeURL})
}

// render executes t into a buffer and writes the indented result, so a
// template failure never leaves a half-written page.
func (r *Renderer) render(w io.Writer, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("site.Renderer: execute %s: %w", t.Name(), err)
	}
	if _, err := w.Write(gohtml.FormatBytes(buf.Bytes())); err != nil {
		return fmt.Errorf("site.Renderer: write: %w", err)
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// dialString keeps the digits of phone and a leading plus sign.
func dialString(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
