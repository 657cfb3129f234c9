package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/domain/rider"
)

// dutyWindowDays is how far back duty history counts when balancing
// allocations across club members.
const dutyWindowDays = 365

// RosterService assigns race-day duties to club members, spreading them
// across whoever has done the fewest recently.
type RosterService struct {
	raceRepo  race.Repository
	staffRepo race.StaffRepository
	riderRepo rider.Repository
}

func NewRosterService(raceRepo race.Repository, staffRepo race.StaffRepository, riderRepo rider.Repository) *RosterService {
	return &RosterService{raceRepo: raceRepo, staffRepo: staffRepo, riderRepo: riderRepo}
}

// ListStaff returns the race's duty assignments.
func (s *RosterService) ListStaff(ctx context.Context, raceID int64) ([]race.Staff, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListStaff")
	defer span.End()

	if _, err := s.getRace(ctx, raceID); err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list staff for race %d: %w", raceID, err)
	}
	return staff, nil
}

// Allocate fills the race's duty officer and duty helper slots from the
// club's current racing members. Members who have done the role least in
// the past year come first; riders already staffed on the race are skipped.
func (s *RosterService) Allocate(ctx context.Context, raceID int64) ([]race.Staff, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Allocate")
	defer span.End()

	rc, err := s.getRace(ctx, raceID)
	if err != nil {
		return nil, err
	}

	members, err := s.riderRepo.ListMembersByClub(ctx, rc.ClubID, rider.MembershipRace, rc.Date)
	if err != nil {
		return nil, fmt.Errorf("list club members: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: club %d has no current racing members", ErrInvalidInput, rc.ClubID)
	}

	existing, err := s.staffRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list staff for race %d: %w", raceID, err)
	}
	assigned := map[int64]struct{}{}
	for _, st := range existing {
		assigned[st.RiderID] = struct{}{}
	}

	slots := []struct {
		role  race.StaffRole
		count int
	}{
		{race.RoleDutyOfficer, 1},
		{race.RoleDutyHelper, 2},
	}

	created := make([]race.Staff, 0, 3)
	since := rc.Date.AddDate(0, 0, -dutyWindowDays)
	for _, slot := range slots {
		counts, err := s.staffRepo.DutyCounts(ctx, rc.ClubID, slot.role, since)
		if err != nil {
			return nil, fmt.Errorf("count %s duties: %w", slot.role, err)
		}
		candidates := make([]rider.Rider, 0, len(members))
		for _, m := range members {
			if _, taken := assigned[m.ID]; !taken {
				candidates = append(candidates, m)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			ci, cj := counts[candidates[i].ID], counts[candidates[j].ID]
			if ci != cj {
				return ci < cj
			}
			return candidates[i].ID < candidates[j].ID
		})

		for i := 0; i < slot.count && i < len(candidates); i++ {
			st, err := s.staffRepo.Create(ctx, race.Staff{
				RaceID:  raceID,
				RiderID: candidates[i].ID,
				Role:    slot.role,
			})
			if err != nil {
				return nil, fmt.Errorf("assign %s: %w", slot.role, err)
			}
			assigned[st.RiderID] = struct{}{}
			created = append(created, st)
		}
	}
	return created, nil
}

func (s *RosterService) getRace(ctx context.Context, raceID int64) (race.Race, error) {
	rc, found, err := s.raceRepo.GetByID(ctx, raceID)
	if err != nil {
		return race.Race{}, fmt.Errorf("get race %d: %w", raceID, err)
	}
	if !found {
		return race.Race{}, fmt.Errorf("%w: race %d", ErrNotFound, raceID)
	}
	return rc, nil
}
