package render

import "time"

// Date format names accepted in configuration. Each maps to one literal
// layout; the same policy applies everywhere a date is rendered.
const (
	DateFormatCalendar = "YYYY-MM-DD"
	DateFormatBritish  = "DD/MM/YYYY"
	DateFormatAmerican = "MM/DD/YYYY"
	DateFormatISO      = "ISO"
)

// FormatDate renders a millisecond epoch timestamp using the configured
// date format. Zero timestamps render as an empty string.
func FormatDate(millis int64, format string) string {
	if millis == 0 {
		return ""
	}
	ts := time.UnixMilli(millis).UTC()
	switch format {
	case DateFormatCalendar:
		return ts.Format("2006-01-02")
	case DateFormatBritish:
		return ts.Format("02/01/2006")
	case DateFormatAmerican:
		return ts.Format("01/02/2006")
	default:
		return ts.Format(time.RFC3339)
	}
}
