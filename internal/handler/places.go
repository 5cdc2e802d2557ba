package handler

import (
	"net/http"

	"github.com/pkordes/bizsite/internal/httputil"
	"github.com/pkordes/bizsite/internal/places"
)

type autocompleteRequest struct {
	Input    string           `json:"input" validate:"required"`
	Location *places.Location `json:"location"`
}

type detailsRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}

type textSearchRequest struct {
	Query    string           `json:"query" validate:"required"`
	Location *places.Location `json:"location"`
}

// PlacesAutocomplete handles POST /api/google-places/autocomplete.
func (s *Server) PlacesAutocomplete(w http.ResponseWriter, r *http.Request) {
	var req autocompleteRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}
	predictions, err := s.places.Autocomplete(r.Context(), req.Input, req.Location)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"predictions": predictions})
}

// PlacesDetails handles POST /api/google-places/details.
func (s *Server) PlacesDetails(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}
	place, err := s.places.Details(r.Context(), req.PlaceID)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"place": place})
}

// PlacesTextSearch handles POST /api/google-places/text-search.
func (s *Server) PlacesTextSearch(w http.ResponseWriter, r *http.Request) {
	var req textSearchRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}
	results, err := s.places.TextSearch(r.Context(), req.Query, req.Location)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"places": results})
}
