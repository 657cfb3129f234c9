package usecase

import (
	"testing"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
)

// clubFixture wires the full set of memory stores the services need, with
// the standard seed data loaded and the seeded races attached to the
// seeded point score.
type clubFixture struct {
	clubs       *memory.ClubRepository
	courses     *memory.CourseRepository
	races       *memory.RaceRepository
	results     *memory.ResultRepository
	staff       *memory.StaffRepository
	riders      *memory.RiderRepository
	memberships *memory.MembershipRepository
	grades      *memory.GradeRepository
	pointScores *memory.PointScoreRepository
	tallies     *memory.TallyRepository
	raw         *memory.RawDataRepository
	promotion   *PromotionService
	tally       *TallyService
}

func newClubFixture(t *testing.T) *clubFixture {
	t.Helper()

	races := memory.NewRaceRepository(memory.SeedRaces())
	memberships := memory.NewMembershipRepository(memory.SeedMemberships())

	f := &clubFixture{
		clubs:       memory.NewClubRepository(memory.SeedClubs()),
		courses:     memory.NewCourseRepository(memory.SeedCourses()),
		races:       races,
		results:     memory.NewResultRepository(nil, races),
		staff:       memory.NewStaffRepository(nil, races),
		riders:      memory.NewRiderRepository(memory.SeedRiders(), memberships),
		memberships: memberships,
		grades:      memory.NewGradeRepository(memory.SeedGrades()),
		pointScores: memory.NewPointScoreRepository(memory.SeedPointScores(), races),
		tallies:     memory.NewTallyRepository(),
		raw:         memory.NewRawDataRepository(),
	}

	for _, rc := range memory.SeedRaces() {
		if err := f.pointScores.AddRace(t.Context(), memory.PointScoreIDWaratahSeason, rc.ID); err != nil {
			t.Fatalf("attach race %d to point score: %v", rc.ID, err)
		}
	}

	f.promotion = NewPromotionService(f.grades, f.results, DefaultPromotionConfig())
	f.tally = NewTallyService(f.pointScores, f.tallies, f.races, f.results, f.promotion)

	return f
}

func (f *clubFixture) addResult(t *testing.T, res race.Result) race.Result {
	t.Helper()

	created, err := f.results.Create(t.Context(), res)
	if err != nil {
		t.Fatalf("create result: %v", err)
	}
	return created
}

func (f *clubFixture) newUploadService() *UploadService {
	return NewUploadService(
		f.clubs,
		f.riders,
		f.memberships,
		f.grades,
		f.races,
		f.results,
		f.pointScores,
		f.tally,
		f.raw,
		nil,
	)
}
