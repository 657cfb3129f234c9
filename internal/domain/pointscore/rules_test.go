package pointscore

import (
	"strings"
	"testing"

	"github.com/openvelo/clubraces/internal/domain/race"
)

func standardPointScore() PointScore {
	ps := PointScore{Method: MethodStandard}
	ps.ApplyDefaults()
	return ps
}

func TestScoreStandard(t *testing.T) {
	ps := standardPointScore()
	order := []string{"A", "A2", "B", "C", "D"}

	tests := []struct {
		name       string
		result     race.Result
		sctx       ScoreContext
		wantPoints int
		wantReason string
	}{
		{
			name:       "first in full field",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 1},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 7,
			wantReason: "Placed 1 in race",
		},
		{
			name:       "fifth in full field",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 5},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 3,
			wantReason: "Placed 5 in race",
		},
		{
			name:       "sixth in full field earns participation",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 6},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Participation",
		},
		{
			name:       "unplaced finisher",
			result:     race.Result{Grade: "B", UsualGrade: "B"},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Participation",
		},
		{
			name:       "dnf still earns participation",
			result:     race.Result{Grade: "B", UsualGrade: "B", DNF: true},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Participation",
		},
		{
			name:       "second in small field",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 2},
			sctx:       ScoreContext{FieldSize: 10, GradeOrder: order},
			wantPoints: 4,
			wantReason: "Placed 2 in race <= 12 riders",
		},
		{
			name:       "third in small field earns participation",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 3},
			sctx:       ScoreContext{FieldSize: 10, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Participation, race <= 12 riders",
		},
		{
			name:       "winner of tiny field",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 1},
			sctx:       ScoreContext{FieldSize: 4, GradeOrder: order},
			wantPoints: 3,
			wantReason: "Placed 1 in small race < 6 riders",
		},
		{
			name:       "second in tiny field earns participation",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 2},
			sctx:       ScoreContext{FieldSize: 4, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Participation, small race < 6 riders",
		},
		{
			name:       "promotable rider capped",
			result:     race.Result{Grade: "B", UsualGrade: "B", Place: 1},
			sctx:       ScoreContext{FieldSize: 15, Promotable: true, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Rider eligible for promotion",
		},
		{
			name:       "riding below grade capped",
			result:     race.Result{Grade: "C", UsualGrade: "B", Place: 1},
			sctx:       ScoreContext{FieldSize: 15, GradeOrder: order},
			wantPoints: 2,
			wantReason: "Riding below normal grade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, reason := ps.Score(tt.result, tt.sctx)
			if points != tt.wantPoints {
				t.Fatalf("points: got %d want %d", points, tt.wantPoints)
			}
			if reason != tt.wantReason {
				t.Fatalf("reason: got %q want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestScoreSimple(t *testing.T) {
	ps := PointScore{Method: MethodSimple, Points: []int{5, 3, 1}, Participation: 1}

	tests := []struct {
		name       string
		result     race.Result
		wantPoints int
	}{
		{name: "winner", result: race.Result{Place: 1}, wantPoints: 5},
		{name: "third", result: race.Result{Place: 3}, wantPoints: 1},
		{name: "past table", result: race.Result{Place: 4}, wantPoints: 1},
		{name: "unplaced", result: race.Result{}, wantPoints: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, _ := ps.Score(tt.result, ScoreContext{FieldSize: 3, Promotable: true})
			if points != tt.wantPoints {
				t.Fatalf("points: got %d want %d", points, tt.wantPoints)
			}
		})
	}
}

func TestSimpleIgnoresPromotionAndGrade(t *testing.T) {
	ps := PointScore{Method: MethodSimple, Points: []int{5, 3, 1}, Participation: 1}

	points, reason := ps.Score(
		race.Result{Grade: "C", UsualGrade: "B", Place: 1},
		ScoreContext{FieldSize: 4, Promotable: true, GradeOrder: []string{"A", "B", "C"}},
	)
	if points != 5 {
		t.Fatalf("points: got %d want 5", points)
	}
	if !strings.HasPrefix(reason, "Placed 1") {
		t.Fatalf("unexpected reason: %q", reason)
	}
}

func TestApplyDefaults(t *testing.T) {
	var ps PointScore
	ps.ApplyDefaults()

	if ps.Method != MethodStandard {
		t.Fatalf("unexpected method: %s", ps.Method)
	}
	if len(ps.Points) != 5 || ps.Points[0] != 7 {
		t.Fatalf("unexpected points table: %v", ps.Points)
	}
	if len(ps.SmallPoints) != 2 || ps.SmallPoints[0] != 5 {
		t.Fatalf("unexpected small points table: %v", ps.SmallPoints)
	}
	if ps.SmallThreshold != DefaultSmallThreshold || ps.Participation != DefaultParticipation || ps.SmallWin != DefaultSmallWin {
		t.Fatalf("unexpected thresholds: %+v", ps)
	}
}
