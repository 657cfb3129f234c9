package postgres

import (
	"database/sql"
	"time"
)

type riderTableModel struct {
	ID        int64          `db:"id"`
	Username  string         `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	LicenceNo sql.NullString `db:"licence_no"`
	Gender    sql.NullString `db:"gender"`
	DOB       sql.NullInt64  `db:"dob"`
	ClubID    sql.NullInt64  `db:"club_id"`
	Phone     sql.NullString `db:"phone"`
	Email     sql.NullString `db:"email"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type riderInsertModel struct {
	Username  string         `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	LicenceNo sql.NullString `db:"licence_no"`
	Gender    sql.NullString `db:"gender"`
	DOB       sql.NullInt64  `db:"dob"`
	ClubID    sql.NullInt64  `db:"club_id"`
	Phone     sql.NullString `db:"phone"`
	Email     sql.NullString `db:"email"`
}

type membershipTableModel struct {
	ID         int64      `db:"id"`
	RiderID    int64      `db:"rider_id"`
	ClubID     int64      `db:"club_id"`
	MemberDate int64      `db:"member_date"`
	Category   string     `db:"category"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type membershipInsertModel struct {
	RiderID    int64  `db:"rider_id"`
	ClubID     int64  `db:"club_id"`
	MemberDate int64  `db:"member_date"`
	Category   string `db:"category"`
}

type clubGradeTableModel struct {
	ID        int64      `db:"id"`
	ClubID    int64      `db:"club_id"`
	RiderID   int64      `db:"rider_id"`
	Grade     string     `db:"grade"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type clubGradeInsertModel struct {
	ClubID  int64  `db:"club_id"`
	RiderID int64  `db:"rider_id"`
	Grade   string `db:"grade"`
}
