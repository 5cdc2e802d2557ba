package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/httputil"
)

const businessNotFound = "business not found"

type createBusinessRequest struct {
	OwnerEmail    string             `json:"owner_email" validate:"required,email"`
	BusinessName  string             `json:"business_name" validate:"required,max=200"`
	Category      string             `json:"category" validate:"max=100"`
	Description   string             `json:"description" validate:"max=5000"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	Country       string             `json:"country"`
	PostalCode    string             `json:"postal_code"`
	PhoneNumber   string             `json:"phone_number" validate:"max=30"`
	Website       string             `json:"website" validate:"omitempty,url"`
	GoogleMapLink string             `json:"google_map_link" validate:"omitempty,url"`
	GooglePlaceID string             `json:"google_place_id"`
	Rating        *float64           `json:"rating" validate:"omitempty,gte=0,lte=5"`
	TotalRatings  int                `json:"total_ratings" validate:"gte=0"`
	BusinessHours domain.WeeklyHours `json:"business_hours"`
}

func (req createBusinessRequest) toDomain() domain.Business {
	return domain.Business{
		OwnerEmail:    req.OwnerEmail,
		BusinessName:  req.BusinessName,
		Category:      req.Category,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		PhoneNumber:   req.PhoneNumber,
		Website:       req.Website,
		GoogleMapLink: req.GoogleMapLink,
		GooglePlaceID: req.GooglePlaceID,
		Rating:        req.Rating,
		TotalRatings:  req.TotalRatings,
		Hours:         req.BusinessHours,
	}
}

type updateSlugRequest struct {
	Slug string `json:"slug" validate:"required,editslug"`
}

// Pagination is the page metadata of list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// BusinessList is the body of paged business listings.
type BusinessList struct {
	Data       []domain.Business `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// CreateBusiness handles POST /api/businesses.
func (s *Server) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req createBusinessRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.businesses.Create(r.Context(), req.toDomain())
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusCreated, created)
}

// ListBusinesses handles GET /api/businesses.
// Only approved businesses are listed. Supports ?page= and ?limit=
// (defaults: page=1, limit=20, max=100).
func (s *Server) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	p, ok := paginationParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.businesses.ListApproved(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, BusinessList{
		Data:       items,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// GetBusiness handles GET /api/businesses/{id}.
func (s *Server) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	b, err := s.businesses.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, b)
}

// CheckSubdomain handles GET /api/businesses/check-subdomain?slug=.
func (s *Server) CheckSubdomain(w http.ResponseWriter, r *http.Request) {
	raw, err := queryString(r, "slug", true)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	result, err := s.businesses.CheckSubdomain(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// UpdateSlug handles PUT /api/businesses/{id}/slug.
func (s *Server) UpdateSlug(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateSlugRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}
	updated, err := s.businesses.UpdateSlug(r.Context(), id, req.Slug)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}

// ListOwnerBusinesses handles GET /api/owners/businesses?email=.
func (s *Server) ListOwnerBusinesses(w http.ResponseWriter, r *http.Request) {
	email, err := queryString(r, "email", true)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	items, err := s.businesses.ListByOwner(r.Context(), email)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// ListPending handles GET /api/admin/pending.
func (s *Server) ListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := paginationParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.businesses.ListPending(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, BusinessList{
		Data:       items,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	})
}

// ApproveBusiness handles POST /api/admin/businesses/{id}/approve.
func (s *Server) ApproveBusiness(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, s.businesses.Approve)
}

// RejectBusiness handles POST /api/admin/businesses/{id}/reject.
func (s *Server) RejectBusiness(w http.ResponseWriter, r *http.Request) {
	s.setStatus(w, r, s.businesses.Reject)
}

// ApproveAll handles POST /api/admin/approve-all.
func (s *Server) ApproveAll(w http.ResponseWriter, r *http.Request) {
	approved, err := s.businesses.ApproveAllPending(r.Context())
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	s.log.InfoContext(r.Context(), "approved pending businesses", "count", len(approved))
	httputil.JSON(w, http.StatusOK, map[string]any{"approved": len(approved), "data": approved})
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uuid.UUID) (domain.Business, error)) {
	id, err := pathUUID(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	b, err := apply(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, b)
}

// paginationParams binds ?page= and ?limit=, writing a 400 on malformed values.
func paginationParams(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	page, err := queryInt(r, "page")
	if err != nil {
		badRequest(w, err.Error())
		return domain.PaginationParams{}, false
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}
