package places

import (
	"slices"

	"github.com/pkordes/bizsite/internal/domain"
)

// normalize maps a Place resource onto the business form profile.
func (c *Client) normalize(p place) domain.PlaceProfile {
	out := domain.PlaceProfile{
		PlaceID:        p.ID,
		BusinessName:   string(p.DisplayName),
		Address:        firstNonEmpty(p.FormattedAddress, p.ShortFormattedAddress),
		PhoneNumber:    firstNonEmpty(p.NationalPhoneNumber, p.InternationalPhoneNumber),
		Website:        p.WebsiteURI,
		GoogleMapLink:  p.GoogleMapsURI,
		Rating:         p.Rating,
		TotalRatings:   p.UserRatingCount,
		Types:          p.Types,
		PrimaryType:    p.PrimaryType,
		Description:    string(p.EditorialSummary),
		BusinessStatus: p.BusinessStatus,
		PriceLevel:     p.PriceLevel,
		Photos:         []domain.PlacePhoto{},
		Reviews:        []domain.PlaceReview{},
		Attributes:     attributes(p),
	}
	if out.Types == nil {
		out.Types = []string{}
	}
	if p.Location != nil {
		out.Coordinates = &domain.LatLng{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	}
	if p.UTCOffsetMinutes != nil {
		v := *p.UTCOffsetMinutes
		out.UTCOffsetMinutes = &v
	}
	if p.PlusCode != nil {
		out.PlusCode = firstNonEmpty(p.PlusCode.GlobalCode, p.PlusCode.CompoundCode)
	}

	if h := p.RegularOpeningHours; h != nil {
		out.OpeningHours = &domain.OpeningHoursText{WeekdayText: nonNil(h.WeekdayDescriptions), OpenNow: h.OpenNow}
		out.BusinessHours = ParseOpeningHours(h.WeekdayDescriptions)
	}
	if h := p.CurrentOpeningHours; h != nil {
		out.CurrentOpeningHours = &domain.OpeningHoursText{WeekdayText: nonNil(h.WeekdayDescriptions), OpenNow: h.OpenNow}
	}

	for _, ph := range p.Photos {
		if len(out.Photos) == maxPhotos {
			break
		}
		if ph.Name == "" {
			continue
		}
		w, h := ph.WidthPx, ph.HeightPx
		if w == 0 {
			w = 1200
		}
		if h == 0 {
			h = 800
		}
		out.Photos = append(out.Photos, domain.PlacePhoto{
			URL:      c.photoURL(ph.Name, 800, 1200),
			Name:     ph.Name,
			WidthPx:  w,
			HeightPx: h,
		})
	}
	if len(p.Photos) > 0 && p.Photos[0].Name != "" {
		out.PhotoURL = c.photoURL(p.Photos[0].Name, 800, 1200)
	}

	for _, r := range p.Reviews {
		author := r.AuthorAttribution.DisplayName
		if author == "" {
			author = "Anonymous"
		}
		out.Reviews = append(out.Reviews, domain.PlaceReview{
			AuthorName:   author,
			AuthorPhoto:  r.AuthorAttribution.PhotoURI,
			Rating:       r.Rating,
			Text:         string(r.Text),
			Time:         firstNonEmpty(r.PublishTime, r.RelativePublishTimeDescription),
			OriginalText: string(r.OriginalText),
		})
	}

	if po := p.PaymentOptions; po != nil {
		out.PaymentOptions = &domain.PaymentOptions{
			AcceptsCreditCards: po.AcceptsCreditCards,
			AcceptsDebitCards:  po.AcceptsDebitCards,
			AcceptsCashOnly:    po.AcceptsCashOnly,
			AcceptsNFC:         po.AcceptsNfc,
		}
	}
	if po := p.ParkingOptions; po != nil {
		v := domain.ParkingOptions(*po)
		out.ParkingOptions = &v
	}

	for _, ac := range p.AddressComponents {
		text := string(ac.LongText)
		if slices.Contains(ac.Types, "postal_code") {
			out.PostalCode = text
		}
		if slices.Contains(ac.Types, "locality") {
			out.City = text
		}
		if slices.Contains(ac.Types, "administrative_area_level_1") {
			out.State = text
		}
		if slices.Contains(ac.Types, "country") {
			out.Country = text
		}
	}
	return out
}

func attributes(p place) map[string]bool {
	a := map[string]bool{
		"takeout":              p.Takeout,
		"delivery":             p.Delivery,
		"dineIn":               p.DineIn,
		"outdoorSeating":       p.OutdoorSeating,
		"reservable":           p.Reservable,
		"servesBreakfast":      p.ServesBreakfast,
		"servesLunch":          p.ServesLunch,
		"servesDinner":         p.ServesDinner,
		"servesBrunch":         p.ServesBrunch,
		"servesBeer":           p.ServesBeer,
		"servesWine":           p.ServesWine,
		"servesVegetarianFood": p.ServesVegetarianFood,
		"servesCocktails":      p.ServesCocktails,
		"servesDessert":        p.ServesDessert,
		"servesCoffee":         p.ServesCoffee,
		"liveMusic":            p.LiveMusic,
		"menuForChildren":      p.MenuForChildren,

		"wheelchairAccessibleEntrance": false,
		"wheelchairAccessibleParking":  false,
		"wheelchairAccessibleRestroom": false,
		"wheelchairAccessibleSeating":  false,
	}
	if acc := p.AccessibilityOptions; acc != nil {
		a["wheelchairAccessibleEntrance"] = acc.WheelchairAccessibleEntrance
		a["wheelchairAccessibleParking"] = acc.WheelchairAccessibleParking
		a["wheelchairAccessibleRestroom"] = acc.WheelchairAccessibleRestroom
		a["wheelchairAccessibleSeating"] = acc.WheelchairAccessibleSeating
	}
	return a
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
