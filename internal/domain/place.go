package domain

// PlacePrediction is one autocomplete suggestion from the places provider.
type PlacePrediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// PlaceSearchResult is one row of a text search, flagged with Exists when a
// business with the same (case-insensitive) name is already registered.
type PlaceSearchResult struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Rating          *float64 `json:"rating,omitempty"`
	UserRatingCount int      `json:"user_rating_count"`
	BusinessStatus  string   `json:"business_status,omitempty"`
	PhotoURL        string   `json:"photo_url,omitempty"`
	Types           []string `json:"types"`
	Exists          bool     `json:"exists"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlacePhoto references a provider-hosted photo.
type PlacePhoto struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	WidthPx  int    `json:"width_px"`
	HeightPx int    `json:"height_px"`
}

// PlaceReview is a normalised customer review.
type PlaceReview struct {
	AuthorName   string `json:"author_name"`
	AuthorPhoto  string `json:"author_photo,omitempty"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
	Time         string `json:"time,omitempty"`
	OriginalText string `json:"original_text,omitempty"`
}

// OpeningHoursText is the provider's human-readable weekly schedule.
type OpeningHoursText struct {
	WeekdayText []string `json:"weekday_text"`
	OpenNow     bool     `json:"open_now"`
}

// PaymentOptions lists accepted payment methods.
type PaymentOptions struct {
	AcceptsCreditCards bool `json:"accepts_credit_cards"`
	AcceptsDebitCards  bool `json:"accepts_debit_cards"`
	AcceptsCashOnly    bool `json:"accepts_cash_only"`
	AcceptsNFC         bool `json:"accepts_nfc"`
}

// ParkingOptions lists available parking.
type ParkingOptions struct {
	ParkingLot        bool `json:"parking_lot"`
	StreetParking     bool `json:"street_parking"`
	ValetParking      bool `json:"valet_parking"`
	GarageParking     bool `json:"garage_parking"`
	FreeGarageParking bool `json:"free_garage_parking"`
	FreeParkingLot    bool `json:"free_parking_lot"`
	PaidParkingLot    bool `json:"paid_parking_lot"`
	PaidStreetParking bool `json:"paid_street_parking"`
	ValetFreeParking  bool `json:"valet_free_parking"`
	ValetPaidParking  bool `json:"valet_paid_parking"`
}

// PlaceProfile is a place normalised into the shape of the business form.
// Pointer fields are nil when the provider did not return them.
type PlaceProfile struct {
	PlaceID             string            `json:"place_id"`
	BusinessName        string            `json:"business_name"`
	Address             string            `json:"address"`
	PhoneNumber         string            `json:"phone_number"`
	Website             string            `json:"website"`
	GoogleMapLink       string            `json:"google_map_link"`
	Coordinates         *LatLng           `json:"coordinates,omitempty"`
	Rating              *float64          `json:"rating,omitempty"`
	TotalRatings        int               `json:"total_ratings"`
	Types               []string          `json:"types"`
	PrimaryType         string            `json:"primary_type,omitempty"`
	OpeningHours        *OpeningHoursText `json:"opening_hours,omitempty"`
	CurrentOpeningHours *OpeningHoursText `json:"current_opening_hours,omitempty"`
	BusinessHours       WeeklyHours       `json:"business_hours,omitempty"`
	Photos              []PlacePhoto      `json:"photos"`
	PhotoURL            string            `json:"photo_url,omitempty"`
	City                string            `json:"city,omitempty"`
	State               string            `json:"state,omitempty"`
	Country             string            `json:"country,omitempty"`
	PostalCode          string            `json:"postal_code,omitempty"`
	Description         string            `json:"description"`
	BusinessStatus      string            `json:"business_status,omitempty"`
	PriceLevel          string            `json:"price_level,omitempty"`
	Reviews             []PlaceReview     `json:"reviews"`
	Attributes          map[string]bool   `json:"attributes"`
	PaymentOptions      *PaymentOptions   `json:"payment_options,omitempty"`
	ParkingOptions      *ParkingOptions   `json:"parking_options,omitempty"`
	PlusCode            string            `json:"plus_code,omitempty"`
	UTCOffsetMinutes    *int              `json:"utc_offset_minutes,omitempty"`
}
