package places

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkordes/bizsite/internal/domain"
)

// timeRange matches "9:00 AM – 6:00 PM". The API separates the time from the
// meridiem with U+202F and may pad the dash with U+2009, so those are allowed
// besides ASCII whitespace.
var timeRange = regexp.MustCompile(
	`(?i)(\d{1,2}):(\d{2})[\s\x{00a0}\x{2009}\x{202f}]*(AM|PM)[\s\x{00a0}\x{2009}\x{202f}]*[\x{2013}-][\s\x{00a0}\x{2009}\x{202f}]*(\d{1,2}):(\d{2})[\s\x{00a0}\x{2009}\x{202f}]*(AM|PM)`,
)

// ParseOpeningHours converts weekday descriptions such as
// "Monday: 9:00 AM – 6:00 PM" or "Sunday: Closed" into WeeklyHours.
//
// Days that are not mentioned stay closed with the default 09:00 to 18:00
// template. Lines naming no weekday, or with no recognisable time range, are
// ignored. A nil input returns nil.
func ParseOpeningHours(descriptions []string) domain.WeeklyHours {
	if descriptions == nil {
		return nil
	}

	hours := domain.DefaultWeeklyHours()
	for _, line := range descriptions {
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		day := ""
		for _, d := range domain.Weekdays {
			if strings.Contains(lower, d) {
				day = d
				break
			}
		}
		if day == "" {
			continue
		}

		if strings.Contains(lower, "closed") {
			h := hours[day]
			h.Open = false
			hours[day] = h
			continue
		}

		m := timeRange.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hours[day] = domain.DayHours{
			Open:  true,
			Start: to24Hour(m[1], m[2], m[3]),
			End:   to24Hour(m[4], m[5], m[6]),
		}
	}
	return hours
}

// to24Hour converts a 12h clock reading to "HH:MM".
func to24Hour(hour, minute, meridiem string) string {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	switch {
	case strings.EqualFold(meridiem, "PM") && h != 12:
		h += 12
	case strings.EqualFold(meridiem, "AM") && h == 12:
		h = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
