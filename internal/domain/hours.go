package domain

// Weekdays lists the keys of WeeklyHours in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayHours is the opening window for one day in 24h "HH:MM" form.
// Start and End are kept even when Open is false so the edit form has defaults.
type DayHours struct {
	Open  bool   `json:"open"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklyHours maps a lowercase weekday name to its opening window.
type WeeklyHours map[string]DayHours

// DefaultWeeklyHours returns all seven days closed with a 09:00 to 18:00 template.
func DefaultWeeklyHours() WeeklyHours {
	h := make(WeeklyHours, len(Weekdays))
	for _, d := range Weekdays {
		h[d] = DayHours{Open: false, Start: "09:00", End: "18:00"}
	}
	return h
}
