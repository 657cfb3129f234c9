package rider

import (
	"context"
	"time"
)

// Repository provides access to rider records.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Rider, bool, error)
	GetByUsername(ctx context.Context, username string) (Rider, bool, error)
	Create(ctx context.Context, r Rider) (Rider, error)
	Update(ctx context.Context, r Rider) error
	// CountCurrentMembers counts riders whose current membership belongs to
	// the club and is no older than one year at the given date.
	CountCurrentMembers(ctx context.Context, clubID int64, asOf time.Time) (int, error)
	// ListMembersByClub returns riders of the club holding a current
	// membership of the given category, ordered by last then first name.
	ListMembersByClub(ctx context.Context, clubID int64, category MembershipCategory, asOf time.Time) ([]Rider, error)
}

// MembershipRepository provides access to membership history.
type MembershipRepository interface {
	ListByRider(ctx context.Context, riderID int64) ([]Membership, error)
	// Current returns the membership with the most recent date.
	Current(ctx context.Context, riderID int64) (Membership, bool, error)
	Create(ctx context.Context, m Membership) (Membership, error)
}

// GradeRepository provides access to per-club rider grades.
type GradeRepository interface {
	Get(ctx context.Context, clubID, riderID int64) (ClubGrade, bool, error)
	// Create assigns the rider's initial grade for a club. It returns
	// ErrAlreadyGraded if the rider already holds a grade for that club.
	Create(ctx context.Context, g ClubGrade) (ClubGrade, error)
	// Replace changes the rider's grade for a club, creating it if absent.
	Replace(ctx context.Context, clubID, riderID int64, grade string) (ClubGrade, error)
	ListByClub(ctx context.Context, clubID int64) ([]ClubGrade, error)
}
