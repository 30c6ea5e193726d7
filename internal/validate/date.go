package validate

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// CalendarDate reports whether v is a "YYYY-MM-DD" string naming a real
// Gregorian date. Out-of-range days are rejected rather than rolled over,
// so "2024-02-30" and "2023-02-29" fail while "2024-02-29" passes.
func CalendarDate(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) != len(DateLayout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok := digits(s[0:4])
	if !ok {
		return false
	}
	month, ok := digits(s[5:7])
	if !ok || month < 1 || month > 12 {
		return false
	}
	day, ok := digits(s[8:10])
	if !ok || day < 1 || day > 31 {
		return false
	}
	return day <= DaysIn(year, month)
}

// DaysIn returns the number of days in month (1-12) of year.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month]
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DateLessOrEqual compares two CalendarDate-valid strings. Byte order equals
// chronological order for fixed-width zero-padded dates.
func DateLessOrEqual(a, b string) bool {
	return a <= b
}

// digits parses an all-ASCII-digit string. Signs and spaces are rejected.
func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
