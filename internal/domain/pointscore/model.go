package pointscore

// Method selects which scoring variant a point score uses.
type Method string

const (
	// MethodStandard awards placing points with small-field scaling,
	// promotion capping and below-grade capping.
	MethodStandard Method = "standard"
	// MethodSimple awards placing points from a single table with no
	// grade or promotion logic.
	MethodSimple Method = "simple"
)

// PointScore is a season-long competition tallying points across a set of
// races. The points tables are fixed at creation.
type PointScore struct {
	ID             int64
	ClubID         int64
	Name           string
	Method         Method
	Points         []int
	SmallPoints    []int
	SmallThreshold int
	Participation  int
	SmallWin       int
}

// Tally is one rider's accumulated standing in a point score.
type Tally struct {
	ID           int64
	PointScoreID int64
	RiderID      int64
	Points       int
	EventCount   int
}

// Event is one append-only audit entry behind a tally. Seq orders events
// within a point score and rider.
type Event struct {
	ID           int64
	PointScoreID int64
	RiderID      int64
	Seq          int
	Points       int
	Reason       string
}
