// Package places is a thin client for the Google Places API (New).
// It normalises autocomplete, details and text search responses into the
// domain types used by the business form, caching place details in memory.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pkordes/bizsite/internal/domain"
)

const (
	// DefaultBaseURL is the Places API (New) endpoint.
	DefaultBaseURL = "https://places.googleapis.com/v1"

	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 256
	defaultCacheTTL  = 10 * time.Minute

	// MinQueryLength is the shortest autocomplete input or search query accepted.
	MinQueryLength = 2

	autocompleteRadius = 50000.0
	textSearchRadius   = 10000.0
	maxPhotos          = 5
)

const autocompleteFieldMask = "suggestions.placePrediction.placeId,suggestions.placePrediction.text,suggestions.placePrediction.structuredFormat"

const textSearchFieldMask = "places.id,places.displayName,places.formattedAddress,places.photos,places.types,places.rating,places.userRatingCount,places.businessStatus"

var detailsFieldMask = strings.Join([]string{
	"id", "displayName", "formattedAddress", "nationalPhoneNumber", "internationalPhoneNumber",
	"websiteUri", "location", "googleMapsUri", "regularOpeningHours", "photos", "types",
	"rating", "userRatingCount", "reviews", "addressComponents", "editorialSummary",
	"paymentOptions", "parkingOptions", "accessibilityOptions",
	"servesBreakfast", "servesLunch", "servesDinner", "servesBrunch", "servesBeer", "servesWine",
	"servesVegetarianFood", "servesCocktails", "servesDessert", "servesCoffee",
	"liveMusic", "menuForChildren", "takeout", "delivery", "dineIn", "outdoorSeating",
	"reservable", "priceLevel", "utcOffsetMinutes", "currentOpeningHours",
}, ",")

// Config holds the client settings. Zero values fall back to defaults.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	CacheSize  int
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

// Location is an optional search bias centre.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client calls the Places API. It is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	timeout time.Duration
	details *expirable.LRU[string, domain.PlaceProfile]
	log     *slog.Logger
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		timeout: cfg.Timeout,
		details: expirable.NewLRU[string, domain.PlaceProfile](cfg.CacheSize, nil, cfg.CacheTTL),
		log:     cfg.Logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Autocomplete returns place predictions for input, biased to a 50 km circle
// around loc when loc is non-nil. Zero suggestions yield an empty slice.
func (c *Client) Autocomplete(ctx context.Context, input string, loc *Location) ([]domain.PlacePrediction, error) {
	if err := c.checkQuery(input, "input"); err != nil {
		return nil, fmt.Errorf("places.Client.Autocomplete: %w", err)
	}

	body := autocompleteRequest{
		Input:               input,
		LanguageCode:        "en",
		IncludedRegionCodes: []string{"IN"},
		LocationBias:        bias(loc, autocompleteRadius),
	}

	var resp autocompleteResponse
	if err := c.do(ctx, http.MethodPost, "/places:autocomplete", autocompleteFieldMask, body, &resp); err != nil {
		return nil, fmt.Errorf("places.Client.Autocomplete: %w", err)
	}

	predictions := []domain.PlacePrediction{}
	for _, s := range resp.Suggestions {
		p := s.PlacePrediction
		if p == nil {
			continue
		}
		predictions = append(predictions, domain.PlacePrediction{
			PlaceID:       p.PlaceID,
			Description:   string(p.Text),
			MainText:      string(p.StructuredFormat.MainText),
			SecondaryText: string(p.StructuredFormat.SecondaryText),
		})
	}
	return predictions, nil
}

// Details fetches and normalises a place. The "places/" resource prefix is
// added when missing. Successful results are cached by place id.
func (c *Client) Details(ctx context.Context, placeID string) (domain.PlaceProfile, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return domain.PlaceProfile{}, fmt.Errorf("places.Client.Details: %w: place id is required", domain.ErrValidation)
	}
	if !c.Enabled() {
		return domain.PlaceProfile{}, fmt.Errorf("places.Client.Details: %w: places API key is not configured", domain.ErrUnavailable)
	}

	name := placeID
	if !strings.HasPrefix(name, "places/") {
		name = "places/" + name
	}

	if cached, ok := c.details.Get(name); ok {
		c.log.DebugContext(ctx, "place details cache hit", "place", name)
		return cached, nil
	}

	var raw place
	if err := c.do(ctx, http.MethodGet, "/"+name, detailsFieldMask, nil, &raw); err != nil {
		return domain.PlaceProfile{}, fmt.Errorf("places.Client.Details: %w", err)
	}

	profile := c.normalize(raw)
	if profile.PlaceID == "" {
		profile.PlaceID = strings.TrimPrefix(name, "places/")
	}
	c.details.Add(name, profile)
	return profile, nil
}

// TextSearch runs a free-text place search, biased to a 10 km circle around
// loc when loc is non-nil. Results are not flagged as existing; callers that
// know the registered businesses set Exists themselves.
func (c *Client) TextSearch(ctx context.Context, query string, loc *Location) ([]domain.PlaceSearchResult, error) {
	if err := c.checkQuery(query, "query"); err != nil {
		return nil, fmt.Errorf("places.Client.TextSearch: %w", err)
	}

	body := textSearchRequest{
		TextQuery:    query,
		LanguageCode: "en",
		LocationBias: bias(loc, textSearchRadius),
	}

	var resp textSearchResponse
	if err := c.do(ctx, http.MethodPost, "/places:searchText", textSearchFieldMask, body, &resp); err != nil {
		return nil, fmt.Errorf("places.Client.TextSearch: %w", err)
	}

	results := make([]domain.PlaceSearchResult, 0, len(resp.Places))
	for _, p := range resp.Places {
		r := domain.PlaceSearchResult{
			ID:              p.ID,
			Name:            string(p.DisplayName),
			Address:         p.FormattedAddress,
			Rating:          p.Rating,
			UserRatingCount: p.UserRatingCount,
			BusinessStatus:  p.BusinessStatus,
			Types:           p.Types,
		}
		if r.Types == nil {
			r.Types = []string{}
		}
		if len(p.Photos) > 0 && p.Photos[0].Name != "" {
			r.PhotoURL = c.photoURL(p.Photos[0].Name, 400, 400)
		}
		results = append(results, r)
	}
	return results, nil
}

func (c *Client) checkQuery(q, field string) error {
	if len(strings.TrimSpace(q)) < MinQueryLength {
		return fmt.Errorf("%w: %s must be at least %d characters long", domain.ErrValidation, field, MinQueryLength)
	}
	if !c.Enabled() {
		return fmt.Errorf("%w: places API key is not configured", domain.ErrUnavailable)
	}
	return nil
}

// do sends one API request with the key and field mask headers and decodes a
// 2xx JSON body into out. Non-2xx answers become *APIError.
func (c *Client) do(ctx context.Context, method, path, fieldMask string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, raw)
		c.log.WarnContext(ctx, "places API error",
			"status", resp.StatusCode,
			"path", path,
			"google_message", apiErr.GoogleMessage,
		)
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid response from places API: %v", domain.ErrUpstream, err)
	}
	return nil
}

// photoURL builds the media URL of a photo resource.
func (c *Client) photoURL(name string, maxHeight, maxWidth int) string {
	return fmt.Sprintf("%s/%s/media?maxHeightPx=%d&maxWidthPx=%d&key=%s", c.baseURL, name, maxHeight, maxWidth, c.apiKey)
}

func bias(loc *Location, radius float64) *locationBias {
	if loc == nil || loc.Lat == 0 || loc.Lng == 0 {
		return nil
	}
	return &locationBias{Circle: circle{
		Center: latLng{Latitude: loc.Lat, Longitude: loc.Lng},
		Radius: radius,
	}}
}

// APIError is a non-2xx answer from the Places API.
// It unwraps to domain.ErrUpstream.
type APIError struct {
	Status        int
	Message       string
	Help          string
	GoogleMessage string
}

func (e *APIError) Error() string {
	if e.GoogleMessage != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.Status, e.GoogleMessage)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() error { return domain.ErrUpstream }

func newAPIError(status int, body []byte) *APIError {
	var env apiErrorBody
	googleMsg := ""
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		googleMsg = env.Error.Message
	} else {
		googleMsg = strings.TrimSpace(string(body))
	}

	e := &APIError{
		Status:        status,
		Message:       fmt.Sprintf("Google Places API error: %d", status),
		GoogleMessage: googleMsg,
	}
	switch status {
	case http.StatusBadRequest:
		e.Message = "Invalid request to Google Places API"
		e.Help = "The request parameters are invalid. Check the place id or query."
	case http.StatusUnauthorized:
		e.Message = "Google Places API authentication failed"
		e.Help = "API key is invalid or missing. Check GOOGLE_PLACES_API_KEY."
	case http.StatusForbidden:
		e.Message = "Google Places API request denied"
		e.Help = `Enable "Places API (New)" in the Google Cloud Console, check the API key restrictions and make sure billing is enabled.`
	case http.StatusNotFound:
		e.Message = "Place not found"
		e.Help = "The place id is invalid or the place no longer exists."
	case http.StatusTooManyRequests:
		e.Message = "Google Places API quota exceeded"
		e.Help = "You have exceeded your API quota. Check your Google Cloud Console billing."
	}
	return e
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
