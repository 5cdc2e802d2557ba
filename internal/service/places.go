package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/places"
)

// PlacesClient is the subset of *places.Client the service depends on.
type PlacesClient interface {
	Autocomplete(ctx context.Context, input string, loc *places.Location) ([]domain.PlacePrediction, error)
	Details(ctx context.Context, placeID string) (domain.PlaceProfile, error)
	TextSearch(ctx context.Context, query string, loc *places.Location) ([]domain.PlaceSearchResult, error)
}

// nameChecker reports which business names are already registered.
type nameChecker interface {
	ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error)
}

// PlacesService proxies the places provider for the business form and the
// bulk import screen, flagging search hits that are already registered.
type PlacesService struct {
	client PlacesClient
	names  nameChecker
	log    *slog.Logger
}

// NewPlacesService constructs a PlacesService. A nil logger uses slog.Default().
func NewPlacesService(client PlacesClient, names nameChecker, log *slog.Logger) *PlacesService {
	if log == nil {
		log = slog.Default()
	}
	return &PlacesService{client: client, names: names, log: log}
}

// Autocomplete returns place predictions for input.
func (s *PlacesService) Autocomplete(ctx context.Context, input string, loc *places.Location) ([]domain.PlacePrediction, error) {
	result, err := s.client.Autocomplete(ctx, input, loc)
	if err != nil {
		return nil, fmt.Errorf("service.PlacesService.Autocomplete: %w", err)
	}
	return result, nil
}

// Details returns the normalised profile of a place.
func (s *PlacesService) Details(ctx context.Context, placeID string) (domain.PlaceProfile, error) {
	result, err := s.client.Details(ctx, placeID)
	if err != nil {
		return domain.PlaceProfile{}, fmt.Errorf("service.PlacesService.Details: %w", err)
	}
	return result, nil
}

// TextSearch runs a place search and marks results whose name (compared
// case-insensitively) already belongs to a registered business. If that
// lookup fails, the results are returned unflagged.
func (s *PlacesService) TextSearch(ctx context.Context, query string, loc *places.Location) ([]domain.PlaceSearchResult, error) {
	results, err := s.client.TextSearch(ctx, query, loc)
	if err != nil {
		return nil, fmt.Errorf("service.PlacesService.TextSearch: %w", err)
	}

	names := make([]string, 0, len(results))
	for _, r := range results {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return results, nil
	}

	existing, err := s.names.ExistingNames(ctx, names)
	if err != nil {
		s.log.WarnContext(ctx, "duplicate check failed; returning unflagged results", "error", err)
		return results, nil
	}
	for i := range results {
		_, results[i].Exists = existing[strings.ToLower(results[i].Name)]
	}
	return results, nil
}
