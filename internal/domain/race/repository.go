package race

import (
	"context"
	"time"
)

// Repository provides access to race records.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Race, bool, error)
	// ListByClub returns the club's races ordered by date ascending.
	ListByClub(ctx context.Context, clubID int64) ([]Race, error)
	Create(ctx context.Context, r Race) (Race, error)
	// ExistsByHash reports whether the club already has a race imported
	// from a calendar event with the given content hash.
	ExistsByHash(ctx context.Context, clubID int64, hash string) (bool, error)
	CountByClub(ctx context.Context, clubID int64) (int, error)
}

// ResultRepository provides access to race results.
type ResultRepository interface {
	// ListByRace returns results ordered by grade ascending, then place
	// ascending with unplaced results last, then number ascending.
	ListByRace(ctx context.Context, raceID int64) ([]Result, error)
	CountByRace(ctx context.Context, raceID int64) (int, error)
	CountByRaceAndGrade(ctx context.Context, raceID int64, grade string) (int, error)
	// Create returns ErrDuplicateResult if the race already has a result
	// for the rider, or for the same grade and number.
	Create(ctx context.Context, r Result) (Result, error)
	DeleteByRace(ctx context.Context, raceID int64) error
	CountByClub(ctx context.Context, clubID int64) (int, error)
	// PerformanceCounts counts the rider's wins and top-three places in the
	// given grade across the club's races dated in [since, before).
	PerformanceCounts(ctx context.Context, clubID, riderID int64, grade string, since, before time.Time) (PerformanceCounts, error)
}

// CourseRepository provides access to race courses.
type CourseRepository interface {
	List(ctx context.Context) ([]Course, error)
	GetByName(ctx context.Context, name string) (Course, bool, error)
	Create(ctx context.Context, c Course) (Course, error)
}

// StaffRepository provides access to race duty assignments.
type StaffRepository interface {
	ListByRace(ctx context.Context, raceID int64) ([]Staff, error)
	Create(ctx context.Context, s Staff) (Staff, error)
	// DutyCounts returns, per rider, how many times each club member has
	// performed the role at the club's races dated on or after since.
	DutyCounts(ctx context.Context, clubID int64, role StaffRole, since time.Time) (map[int64]int, error)
}
