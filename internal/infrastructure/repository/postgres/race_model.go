package postgres

import (
	"database/sql"
	"time"
)

type raceTableModel struct {
	ID          int64          `db:"id"`
	ClubID      int64          `db:"club_id"`
	CourseID    sql.NullInt64  `db:"course_id"`
	Title       string         `db:"title"`
	RaceDate    int64          `db:"race_date"`
	Status      string         `db:"status"`
	Grading     sql.NullString `db:"grading"`
	ExternalUID sql.NullString `db:"external_uid"`
	ContentHash sql.NullString `db:"content_hash"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type raceInsertModel struct {
	ClubID      int64          `db:"club_id"`
	CourseID    sql.NullInt64  `db:"course_id"`
	Title       string         `db:"title"`
	RaceDate    int64          `db:"race_date"`
	Status      string         `db:"status"`
	Grading     sql.NullString `db:"grading"`
	ExternalUID sql.NullString `db:"external_uid"`
	ContentHash sql.NullString `db:"content_hash"`
}

type raceResultTableModel struct {
	ID         int64          `db:"id"`
	RaceID     int64          `db:"race_id"`
	RiderID    int64          `db:"rider_id"`
	Grade      string         `db:"grade"`
	UsualGrade sql.NullString `db:"usual_grade"`
	Number     int            `db:"number"`
	Place      int            `db:"place"`
	DNF        bool           `db:"dnf"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type raceResultInsertModel struct {
	RaceID     int64          `db:"race_id"`
	RiderID    int64          `db:"rider_id"`
	Grade      string         `db:"grade"`
	UsualGrade sql.NullString `db:"usual_grade"`
	Number     int            `db:"number"`
	Place      int            `db:"place"`
	DNF        bool           `db:"dnf"`
}

type raceStaffTableModel struct {
	ID        int64      `db:"id"`
	RaceID    int64      `db:"race_id"`
	RiderID   int64      `db:"rider_id"`
	Role      string     `db:"role"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type raceStaffInsertModel struct {
	RaceID  int64  `db:"race_id"`
	RiderID int64  `db:"rider_id"`
	Role    string `db:"role"`
}
