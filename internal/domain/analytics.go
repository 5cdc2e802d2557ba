package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Event types accepted by the analytics tracker. Anything else is dropped.
const (
	EventPageView       = "page_view"
	EventButtonClick    = "button_click"
	EventFormSubmit     = "form_submit"
	EventSearch         = "search"
	EventShare          = "share"
	EventBusinessView   = "business_view"
	EventCallClick      = "call_click"
	EventWhatsAppClick  = "whatsapp_click"
	EventDirectionClick = "direction_click"
)

// EventTypes lists every trackable event type in report order.
var EventTypes = []string{
	EventPageView, EventButtonClick, EventFormSubmit, EventSearch, EventShare,
	EventBusinessView, EventCallClick, EventWhatsAppClick, EventDirectionClick,
}

// KnownEventType reports whether t is a trackable event type.
func KnownEventType(t string) bool {
	return slices.Contains(EventTypes, t)
}

// ZeroFilled returns a copy of counts with every known event type present.
func ZeroFilled(counts map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(EventTypes))
	for _, t := range EventTypes {
		out[t] = 0
	}
	for t, n := range counts {
		out[t] = n
	}
	return out
}

// AnalyticsEvent is a single tracked interaction on a business micro-site.
type AnalyticsEvent struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	EventType  string
	CreatedAt  time.Time
}

// Period selects the time window of an analytics report.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query value to a Period, falling back to PeriodAll.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeek, PeriodMonth:
		return Period(s)
	}
	return PeriodAll
}

// Since returns the lower time bound for the period relative to now.
// The zero time means "no lower bound".
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	}
	return time.Time{}
}

// DailyCount is the number of events of one type on one UTC day.
type DailyCount struct {
	Day       time.Time `json:"day"`
	EventType string    `json:"event_type"`
	Count     int64     `json:"count"`
}

// AnalyticsReport is the analytics view for one business.
type AnalyticsReport struct {
	BusinessID   uuid.UUID        `json:"business_id"`
	BusinessName string           `json:"business_name"`
	Period       Period           `json:"period"`
	Totals       map[string]int64 `json:"totals"`
	Breakdown    []DailyCount     `json:"breakdown"`
	Overall      map[string]int64 `json:"overall"`
}

// BusinessAnalytics is one row of an owner's analytics summary.
type BusinessAnalytics struct {
	BusinessID   uuid.UUID        `json:"business_id"`
	BusinessName string           `json:"business_name"`
	Slug         string           `json:"slug"`
	Category     string           `json:"category,omitempty"`
	Totals       map[string]int64 `json:"totals"`
}
