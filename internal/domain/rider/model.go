package rider

import (
	"errors"
	"strings"
	"time"
)

// ErrAlreadyGraded is returned when a rider already holds a grade for a
// club and a second initial assignment is attempted.
var ErrAlreadyGraded = errors.New("rider already graded for club")

// Rider is a person who races or officiates. Riders are identified
// externally by a stable username derived from their name and licence.
type Rider struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	LicenceNo string
	Gender    string
	DOB       time.Time
	ClubID    int64
	Phone     string
	Email     string
}

// Name returns the rider's display name.
func (r Rider) Name() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// MakeUsername derives the stable username used to match uploaded riders
// against existing records. The licence number keeps same-named riders apart.
func MakeUsername(firstName, lastName, licenceNo string) string {
	parts := []string{slugify(firstName), slugify(lastName)}
	if licence := slugify(licenceNo); licence != "" {
		parts = append(parts, licence)
	}
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			joined = append(joined, p)
		}
	}
	return strings.Join(joined, "-")
}

func slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	b.Grow(len(value))
	lastDash := true
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// MembershipCategory distinguishes what a membership entitles the holder to.
type MembershipCategory string

const (
	MembershipRace      MembershipCategory = "race"
	MembershipRide      MembershipCategory = "ride"
	MembershipNonRiding MembershipCategory = "non-riding"
)

// Membership records a rider's club membership for a season. A rider's
// current membership is the one with the most recent date.
type Membership struct {
	ID       int64
	RiderID  int64
	ClubID   int64
	Date     time.Time
	Category MembershipCategory
}

// ClubGrade is the grade a rider usually races in for one club. A rider
// holds at most one grade per club.
type ClubGrade struct {
	ID      int64
	ClubID  int64
	RiderID int64
	Grade   string
}
