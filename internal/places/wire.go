package places

import (
	"bytes"
	"encoding/json"
)

// localizedText decodes fields the API returns either as a bare string or as
// an object of the form {"text": "...", "languageCode": "..."}.
type localizedText string

func (l *localizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = localizedText(s)
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = localizedText(obj.Text)
	return nil
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type autocompleteRequest struct {
	Input               string        `json:"input"`
	LanguageCode        string        `json:"languageCode"`
	IncludedRegionCodes []string      `json:"includedRegionCodes"`
	LocationBias        *locationBias `json:"locationBias,omitempty"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction *struct {
			PlaceID          string        `json:"placeId"`
			Text             localizedText `json:"text"`
			StructuredFormat struct {
				MainText      localizedText `json:"mainText"`
				SecondaryText localizedText `json:"secondaryText"`
			} `json:"structuredFormat"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

type textSearchRequest struct {
	TextQuery    string        `json:"textQuery"`
	LanguageCode string        `json:"languageCode"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type textSearchResponse struct {
	Places []struct {
		ID               string        `json:"id"`
		DisplayName      localizedText `json:"displayName"`
		FormattedAddress string        `json:"formattedAddress"`
		Photos           []photo       `json:"photos"`
		Types            []string      `json:"types"`
		Rating           *float64      `json:"rating"`
		UserRatingCount  int           `json:"userRatingCount"`
		BusinessStatus   string        `json:"businessStatus"`
	} `json:"places"`
}

type photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
	OpenNow             bool     `json:"openNow"`
}

type review struct {
	AuthorAttribution struct {
		DisplayName string `json:"displayName"`
		PhotoURI    string `json:"photoUri"`
	} `json:"authorAttribution"`
	Rating                         int           `json:"rating"`
	Text                           localizedText `json:"text"`
	OriginalText                   localizedText `json:"originalText"`
	PublishTime                    string        `json:"publishTime"`
	RelativePublishTimeDescription string        `json:"relativePublishTimeDescription"`
}

type addressComponent struct {
	LongText localizedText `json:"longText"`
	Types    []string      `json:"types"`
}

type paymentOptions struct {
	AcceptsCreditCards bool `json:"acceptsCreditCards"`
	AcceptsDebitCards  bool `json:"acceptsDebitCards"`
	AcceptsCashOnly    bool `json:"acceptsCashOnly"`
	AcceptsNfc         bool `json:"acceptsNfc"`
}

type parkingOptions struct {
	ParkingLot        bool `json:"parkingLot"`
	StreetParking     bool `json:"streetParking"`
	ValetParking      bool `json:"valetParking"`
	GarageParking     bool `json:"garageParking"`
	FreeGarageParking bool `json:"freeGarageParking"`
	FreeParkingLot    bool `json:"freeParkingLot"`
	PaidParkingLot    bool `json:"paidParkingLot"`
	PaidStreetParking bool `json:"paidStreetParking"`
	ValetFreeParking  bool `json:"valetFreeParking"`
	ValetPaidParking  bool `json:"valetPaidParking"`
}

type accessibilityOptions struct {
	WheelchairAccessibleEntrance bool `json:"wheelchairAccessibleEntrance"`
	WheelchairAccessibleParking  bool `json:"wheelchairAccessibleParking"`
	WheelchairAccessibleRestroom bool `json:"wheelchairAccessibleRestroom"`
	WheelchairAccessibleSeating  bool `json:"wheelchairAccessibleSeating"`
}

// place is the subset of the Place resource requested by detailsFieldMask.
type place struct {
	ID                       string                `json:"id"`
	DisplayName              localizedText         `json:"displayName"`
	FormattedAddress         string                `json:"formattedAddress"`
	ShortFormattedAddress    string                `json:"shortFormattedAddress"`
	NationalPhoneNumber      string                `json:"nationalPhoneNumber"`
	InternationalPhoneNumber string                `json:"internationalPhoneNumber"`
	WebsiteURI               string                `json:"websiteUri"`
	GoogleMapsURI            string                `json:"googleMapsUri"`
	Location                 *latLng               `json:"location"`
	RegularOpeningHours      *openingHours         `json:"regularOpeningHours"`
	CurrentOpeningHours      *openingHours         `json:"currentOpeningHours"`
	Photos                   []photo               `json:"photos"`
	Types                    []string              `json:"types"`
	PrimaryType              string                `json:"primaryType"`
	Rating                   *float64              `json:"rating"`
	UserRatingCount          int                   `json:"userRatingCount"`
	Reviews                  []review              `json:"reviews"`
	AddressComponents        []addressComponent    `json:"addressComponents"`
	EditorialSummary         localizedText         `json:"editorialSummary"`
	PaymentOptions           *paymentOptions       `json:"paymentOptions"`
	ParkingOptions           *parkingOptions       `json:"parkingOptions"`
	AccessibilityOptions     *accessibilityOptions `json:"accessibilityOptions"`
	BusinessStatus           string                `json:"businessStatus"`
	PriceLevel               string                `json:"priceLevel"`
	UTCOffsetMinutes         *int                  `json:"utcOffsetMinutes"`
	PlusCode                 *struct {
		GlobalCode   string `json:"globalCode"`
		CompoundCode string `json:"compoundCode"`
	} `json:"plusCode"`

	Takeout              bool `json:"takeout"`
	Delivery             bool `json:"delivery"`
	DineIn               bool `json:"dineIn"`
	OutdoorSeating       bool `json:"outdoorSeating"`
	Reservable           bool `json:"reservable"`
	ServesBreakfast      bool `json:"servesBreakfast"`
	ServesLunch          bool `json:"servesLunch"`
	ServesDinner         bool `json:"servesDinner"`
	ServesBrunch         bool `json:"servesBrunch"`
	ServesBeer           bool `json:"servesBeer"`
	ServesWine           bool `json:"servesWine"`
	ServesVegetarianFood bool `json:"servesVegetarianFood"`
	ServesCocktails      bool `json:"servesCocktails"`
	ServesDessert        bool `json:"servesDessert"`
	ServesCoffee         bool `json:"servesCoffee"`
	LiveMusic            bool `json:"liveMusic"`
	MenuForChildren      bool `json:"menuForChildren"`
}

// apiErrorBody is the error envelope of Google APIs.
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
