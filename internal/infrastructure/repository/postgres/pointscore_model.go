package postgres

import (
	"time"

	"github.com/lib/pq"
)

type pointScoreTableModel struct {
	ID             int64         `db:"id"`
	ClubID         int64         `db:"club_id"`
	Name           string        `db:"name"`
	Method         string        `db:"method"`
	Points         pq.Int64Array `db:"points"`
	SmallPoints    pq.Int64Array `db:"smallpoints"`
	SmallThreshold int           `db:"small_threshold"`
	Participation  int           `db:"participation"`
	SmallWin       int           `db:"small_win"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}

type pointScoreInsertModel struct {
	ClubID         int64         `db:"club_id"`
	Name           string        `db:"name"`
	Method         string        `db:"method"`
	Points         pq.Int64Array `db:"points"`
	SmallPoints    pq.Int64Array `db:"smallpoints"`
	SmallThreshold int           `db:"small_threshold"`
	Participation  int           `db:"participation"`
	SmallWin       int           `db:"small_win"`
}

type tallyTableModel struct {
	ID           int64      `db:"id"`
	PointScoreID int64      `db:"pointscore_id"`
	RiderID      int64      `db:"rider_id"`
	Points       int        `db:"points"`
	EventCount   int        `db:"eventcount"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type tallyEventTableModel struct {
	ID           int64     `db:"id"`
	PointScoreID int64     `db:"pointscore_id"`
	RiderID      int64     `db:"rider_id"`
	Seq          int       `db:"seq"`
	Points       int       `db:"points"`
	Reason       string    `db:"reason"`
	CreatedAt    time.Time `db:"created_at"`
}

func int64Array(values []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}

func intSlice(values pq.Int64Array) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}
