package memory

import (
	"errors"
	"testing"

	"github.com/openvelo/clubraces/internal/domain/rider"
)

func TestGradeRepository_CreateRejectsSecondGrade(t *testing.T) {
	repo := NewGradeRepository(SeedGrades())

	_, err := repo.Create(t.Context(), rider.ClubGrade{ClubID: ClubIDWaratah, RiderID: 1, Grade: "A"})
	if !errors.Is(err, rider.ErrAlreadyGraded) {
		t.Fatalf("a rider holds one grade per club, got %v", err)
	}

	created, err := repo.Create(t.Context(), rider.ClubGrade{ClubID: ClubIDLidcombe, RiderID: 1, Grade: "A"})
	if err != nil {
		t.Fatalf("grading at another club should be fine: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created grade should get an id")
	}
}

func TestGradeRepository_Replace(t *testing.T) {
	repo := NewGradeRepository(SeedGrades())

	replaced, err := repo.Replace(t.Context(), ClubIDWaratah, 3, "B")
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Grade != "B" {
		t.Fatalf("unexpected grade: %+v", replaced)
	}

	g, found, err := repo.Get(t.Context(), ClubIDWaratah, 3)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if g.Grade != "B" {
		t.Fatalf("replace should persist: %+v", g)
	}

	fresh, err := repo.Replace(t.Context(), ClubIDLidcombe, 3, "C")
	if err != nil {
		t.Fatalf("replace without an existing grade should create one: %v", err)
	}
	if fresh.Grade != "C" || fresh.ID == 0 {
		t.Fatalf("unexpected grade: %+v", fresh)
	}
}
