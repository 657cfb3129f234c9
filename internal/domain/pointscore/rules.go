package pointscore

import (
	"fmt"

	"github.com/openvelo/clubraces/internal/domain/race"
)

// Fields below this size score as tiny races: only the winner earns more
// than participation points.
const TinyFieldSize = 6

// Defaults for newly created point scores.
const (
	DefaultSmallThreshold = 12
	DefaultParticipation  = 2
	DefaultSmallWin       = 3
)

// DefaultPoints returns the default placing points table.
func DefaultPoints() []int {
	return []int{7, 6, 5, 4, 3}
}

// DefaultSmallPoints returns the default placing points table for small
// fields.
func DefaultSmallPoints() []int {
	return []int{5, 4}
}

// ApplyDefaults fills any unset scoring parameters.
func (ps *PointScore) ApplyDefaults() {
	if ps.Method == "" {
		ps.Method = MethodStandard
	}
	if len(ps.Points) == 0 {
		ps.Points = DefaultPoints()
	}
	if len(ps.SmallPoints) == 0 {
		ps.SmallPoints = DefaultSmallPoints()
	}
	if ps.SmallThreshold == 0 {
		ps.SmallThreshold = DefaultSmallThreshold
	}
	if ps.Participation == 0 {
		ps.Participation = DefaultParticipation
	}
	if ps.SmallWin == 0 {
		ps.SmallWin = DefaultSmallWin
	}
}

// ScoreContext carries the per-result facts the scoring rules need beyond
// the result itself.
type ScoreContext struct {
	// FieldSize is the number of finishers recorded in the result's grade.
	FieldSize int
	// Promotable reports whether the rider was eligible for promotion when
	// the race was run.
	Promotable bool
	// GradeOrder is the race's grades, best first, for below-grade checks.
	GradeOrder []string
}

// Score returns the points and audit reason for one result under this
// point score's method.
func (ps PointScore) Score(res race.Result, sctx ScoreContext) (int, string) {
	if ps.Method == MethodSimple {
		return ps.scoreSimple(res)
	}
	return ps.scoreStandard(res, sctx)
}

func (ps PointScore) scoreStandard(res race.Result, sctx ScoreContext) (int, string) {
	if !res.Placed() {
		return ps.Participation, "Participation"
	}
	if sctx.Promotable {
		return ps.Participation, "Rider eligible for promotion"
	}
	if race.GradeBelow(sctx.GradeOrder, res.Grade, res.UsualGrade) {
		return ps.Participation, "Riding below normal grade"
	}
	switch {
	case sctx.FieldSize < TinyFieldSize:
		if res.Place == 1 {
			return ps.SmallWin, fmt.Sprintf("Placed 1 in small race < %d riders", TinyFieldSize)
		}
		return ps.Participation, fmt.Sprintf("Participation, small race < %d riders", TinyFieldSize)
	case sctx.FieldSize <= ps.SmallThreshold:
		if res.Place <= len(ps.SmallPoints) {
			return ps.SmallPoints[res.Place-1], fmt.Sprintf("Placed %d in race <= %d riders", res.Place, ps.SmallThreshold)
		}
		return ps.Participation, fmt.Sprintf("Participation, race <= %d riders", ps.SmallThreshold)
	default:
		if res.Place <= len(ps.Points) {
			return ps.Points[res.Place-1], fmt.Sprintf("Placed %d in race", res.Place)
		}
		return ps.Participation, "Participation"
	}
}

func (ps PointScore) scoreSimple(res race.Result) (int, string) {
	if !res.Placed() || res.Place > len(ps.Points) {
		return ps.Participation, "Participation"
	}
	return ps.Points[res.Place-1], fmt.Sprintf("Placed %d in race", res.Place)
}
