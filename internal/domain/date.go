package domain

import "time"

// Date layouts used across input parsing and display.
const (
	DateLayout      = "20060102"
	YearMonthLayout = "200601"
)

// NewDate builds a calendar day at UTC midnight. All dates in the domain are
// normalized this way so they compare with time.Time.Equal/Before/After.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates t to its calendar day at UTC midnight.
func DayOf(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYYMMDD token into a normalized calendar day.
func ParseDate(token string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, token, time.UTC)
	if err != nil {
		return time.Time{}, &MalformedInputError{Value: token, Constraint: "date must be in YYYYMMDD format"}
	}
	return t, nil
}

// ParseYearMonth parses a YYYYMM token into the first day of that month.
func ParseYearMonth(token string) (time.Time, error) {
	t, err := time.ParseInLocation(YearMonthLayout, token, time.UTC)
	if err != nil {
		return time.Time{}, &MalformedInputError{Value: token, Constraint: "year-month must be in YYYYMM format"}
	}
	return t, nil
}

// MonthEnd returns the last calendar day of the month containing firstOfMonth.
func MonthEnd(firstOfMonth time.Time) time.Time {
	return NewDate(firstOfMonth.Year(), firstOfMonth.Month()+1, 0)
}
