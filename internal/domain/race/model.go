package race

import (
	"errors"
	"strings"
	"time"
)

// ErrDuplicateResult is returned when a result already exists for the same
// race and rider, or for the same race, grade and number.
var ErrDuplicateResult = errors.New("race result already exists")

// Status is the lifecycle state of a race.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusWithdrawn Status = "withdrawn"
	StatusCancelled Status = "cancelled"
)

// HelperGrade is the sentinel grade for riders who officiated instead of
// racing. Helpers are credited their average points per event.
const HelperGrade = "Helper"

// DefaultNumber is assigned to results uploaded without a bib number.
const DefaultNumber = 999

// Course is a venue races are held at.
type Course struct {
	ID       int64
	Name     string
	Location string
}

// Race is a single race meeting. Grading is the ordered list of grades run
// at this race, best grade first, as a comma separated string. ExternalUID
// and ContentHash identify races imported from club calendar feeds.
type Race struct {
	ID          int64
	ClubID      int64
	CourseID    int64
	Title       string
	Date        time.Time
	Status      Status
	Grading     string
	ExternalUID string
	ContentHash string
}

// Label returns the display string used to annotate tally audit reasons.
func (r Race) Label() string {
	return r.Title + ", " + r.Date.Format("2006-01-02")
}

// GradeOrder returns the race's grades in order, best grade first.
func (r Race) GradeOrder() []string {
	if r.Grading == "" {
		return nil
	}
	parts := strings.Split(r.Grading, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GradeIndex returns the position of a grade in the given order, or -1.
func GradeIndex(order []string, grade string) int {
	for i, g := range order {
		if g == grade {
			return i
		}
	}
	return -1
}

// GradeBelow reports whether raced is a lower (easier) grade than usual.
// Grades absent from the order fall back to lexicographic comparison.
func GradeBelow(order []string, raced, usual string) bool {
	if raced == "" || usual == "" || raced == usual {
		return false
	}
	ri, ui := GradeIndex(order, raced), GradeIndex(order, usual)
	if ri >= 0 && ui >= 0 {
		return ri > ui
	}
	return raced > usual
}

// Result is one rider's outcome in one race. Place 0 means unplaced.
// UsualGrade is the grade the rider held for the club when the result was
// recorded, used to detect riders racing below their grade.
type Result struct {
	ID         int64
	RaceID     int64
	RiderID    int64
	Grade      string
	UsualGrade string
	Number     int
	Place      int
	DNF        bool
}

// Placed reports whether the result earned a finishing place.
func (r Result) Placed() bool {
	return r.Place > 0
}

// PerformanceCounts aggregates a rider's recent finishes for promotion
// decisions.
type PerformanceCounts struct {
	Wins   int
	Places int
}

// StaffRole names a duty performed at a race.
type StaffRole string

const (
	RoleCommissaire StaffRole = "commissaire"
	RoleDutyOfficer StaffRole = "duty-officer"
	RoleDutyHelper  StaffRole = "duty-helper"
)

// Staff assigns a rider a duty at a race.
type Staff struct {
	ID      int64
	RaceID  int64
	RiderID int64
	Role    StaffRole
}
