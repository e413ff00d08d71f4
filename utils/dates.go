// utils/dates.go
package utils

import "time"

// ScheduleDateLayout is the wire format for booking dates.
const ScheduleDateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ValidScheduleDate reports whether s parses as YYYY-MM-DD.
func ValidScheduleDate(s string) bool {
	_, err := time.Parse(ScheduleDateLayout, s)
	return err == nil
}
