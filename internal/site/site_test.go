package site_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/site"
)

func newRenderer(t *testing.T) *site.Renderer {
	t.Helper()
	r, err := site.NewRenderer("https://bizsite.example", "/api/analytics/track")
	require.NoError(t, err)
	return r
}

func TestRenderer_Business(t *testing.T) {
	rating := 4.56
	hours := domain.DefaultWeeklyHours()
	hours["monday"] = domain.DayHours{Open: true, Start: "09:00", End: "18:00"}
	b := domain.Business{
		ID:            uuid.MustParse("6f1c2d3e-0000-4000-8000-000000000001"),
		BusinessName:  "Joe's <Pizza>",
		Category:      "restaurant",
		Description:   "Wood-fired pizza.",
		Address:       "12 MG Road",
		City:          "Pune",
		Country:       "India",
		PhoneNumber:   "+91 20 1234-5678",
		GoogleMapLink: "https://maps.google.com/?cid=1",
		Rating:        &rating,
		TotalRatings:  42,
		Hours:         hours,
	}

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Business(&buf, b))
	html := buf.String()

	assert.Contains(t, html, "&lt;Pizza&gt;", "business name is escaped")
	assert.NotContains(t, html, "<Pizza>")
	assert.Contains(t, html, "12 MG Road, Pune, India")
	assert.Contains(t, html, "tel:")
	assert.Contains(t, html, "912012345678", "phone is reduced to dialable digits")
	assert.Contains(t, html, "Rated 4.6 from 42 reviews")
	assert.Contains(t, html, "09:00 - 18:00")
	assert.Contains(t, html, "Closed")
	assert.Contains(t, html, "6f1c2d3e-0000-4000-8000-000000000001")
	assert.Contains(t, html, "https://maps.google.com/?cid=1")
}

func TestRenderer_Business_Minimal(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t).Business(&buf, domain.Business{BusinessName: "Bare"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Bare")
	assert.NotContains(t, buf.String(), "Opening hours")
	assert.NotContains(t, buf.String(), "tel:")
}

func TestRenderer_NotFound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).NotFound(&buf, "ghost"))

	assert.Contains(t, buf.String(), "Site not found")
	assert.Contains(t, buf.String(), "ghost")
	assert.Contains(t, buf.String(), "https://bizsite.example")
}
