package utils

import "time"

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// AgeOn returns the number of full years elapsed between dob and today
func AgeOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// YearsBefore returns the calendar date n years before today.
// 29 February clamps to 28 February so that the result agrees with AgeOn:
// a person born on YearsBefore(today, n) is exactly n years old today.
func YearsBefore(today time.Time, n int) time.Time {
	year := today.Year() - n
	month, day := today.Month(), today.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, today.Location())
}

// Truncate drops the clock part of t
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
