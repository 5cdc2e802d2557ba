// Package domain contains the core data types for the business website builder.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, site).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BusinessStatus is the approval state of a business listing.
// Only approved businesses are published on their subdomain.
type BusinessStatus string

const (
	StatusPending  BusinessStatus = "pending"
	StatusApproved BusinessStatus = "approved"
	StatusRejected BusinessStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s BusinessStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Business is one tenant of the platform: the data behind a generated micro-site.
// Slug is unique across all businesses and doubles as the subdomain label.
type Business struct {
	ID            uuid.UUID      `json:"id"`
	OwnerEmail    string         `json:"owner_email"`
	BusinessName  string         `json:"business_name"`
	Slug          string         `json:"slug"`
	Category      string         `json:"category,omitempty"`
	Description   string         `json:"description,omitempty"`
	Address       string         `json:"address,omitempty"`
	City          string         `json:"city,omitempty"`
	State         string         `json:"state,omitempty"`
	Country       string         `json:"country,omitempty"`
	PostalCode    string         `json:"postal_code,omitempty"`
	PhoneNumber   string         `json:"phone_number,omitempty"`
	Website       string         `json:"website,omitempty"`
	GoogleMapLink string         `json:"google_map_link,omitempty"`
	GooglePlaceID string         `json:"google_place_id,omitempty"`
	Rating        *float64       `json:"rating,omitempty"`
	TotalRatings  int            `json:"total_ratings"`
	Hours         WeeklyHours    `json:"business_hours,omitempty"`
	Status        BusinessStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// SubdomainCheck is the answer to "can I use this slug?".
// Suggestion is only set when the requested slug is unavailable or invalid.
type SubdomainCheck struct {
	Slug       string `json:"slug"`
	Valid      bool   `json:"valid"`
	Available  bool   `json:"available"`
	Suggestion string `json:"suggestion,omitempty"`
}
