package utils

import "time"

// ISODateLayout sorts lexically in chronological order.
const ISODateLayout = "2006-01-02"

// ISODate is the calendar day of t in its own location.
func ISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}
