package postgres

import (
	"database/sql"
	"time"
)

type clubTableModel struct {
	ID        int64          `db:"id"`
	Slug      string         `db:"slug"`
	Name      string         `db:"name"`
	Website   sql.NullString `db:"website"`
	ICalURL   sql.NullString `db:"ical_url"`
	Grading   sql.NullString `db:"grading"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type clubInsertModel struct {
	Slug    string         `db:"slug"`
	Name    string         `db:"name"`
	Website sql.NullString `db:"website"`
	ICalURL sql.NullString `db:"ical_url"`
	Grading sql.NullString `db:"grading"`
}
