package rider

import (
	"fmt"
	"time"
)

// Classification returns the age and gender racing category for a rider at
// the given date. Junior categories run in two-year bands, masters in
// five-year bands from age 30.
func Classification(gender string, dob time.Time, at time.Time) string {
	if dob.IsZero() {
		return ""
	}
	age := ageAt(dob, at)
	prefix := "M"
	if gender == "F" || gender == "W" {
		prefix = "W"
	}
	switch {
	case age < 11:
		return "Kidz"
	case age < 13:
		return "U13 " + prefix
	case age < 15:
		return "U15 " + prefix
	case age < 17:
		return "U17 " + prefix
	case age < 19:
		return "U19 " + prefix
	case age < 23:
		return "U23 " + prefix
	case age < 30:
		return "Elite " + prefix
	default:
		band := (age - 25) / 5
		if band > 10 {
			band = 10
		}
		return fmt.Sprintf("%s%d", prefix, band)
	}
}

func ageAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}
