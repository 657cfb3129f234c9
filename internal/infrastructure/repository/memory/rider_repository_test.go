package memory

import (
	"testing"
	"time"

	"github.com/openvelo/clubraces/internal/domain/rider"
)

func TestRiderRepository_GetByUsername(t *testing.T) {
	memberships := NewMembershipRepository(SeedMemberships())
	repo := NewRiderRepository(SeedRiders(), memberships)

	rd, found, err := repo.GetByUsername(t.Context(), "beth-nguyen-100002")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if rd.ID != 2 {
		t.Fatalf("unexpected rider: %+v", rd)
	}

	if _, found, _ := repo.GetByUsername(t.Context(), "nobody-000000"); found {
		t.Fatal("unknown username should not be found")
	}
}

func TestRiderRepository_ListMembersByClub(t *testing.T) {
	memberships := NewMembershipRepository(SeedMemberships())
	repo := NewRiderRepository(SeedRiders(), memberships)
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	members, err := repo.ListMembersByClub(t.Context(), ClubIDWaratah, rider.MembershipRace, asOf)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	if members[0].LastName != "Moore" || members[1].LastName != "Nguyen" || members[2].LastName != "Ostermann" {
		t.Fatalf("members should sort by last name: %+v", members)
	}
}

func TestRiderRepository_MembershipCurrency(t *testing.T) {
	memberships := NewMembershipRepository(SeedMemberships())
	repo := NewRiderRepository(SeedRiders(), memberships)

	count, err := repo.CountCurrentMembers(t.Context(), ClubIDWaratah, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 current members, got %d", count)
	}

	count, err = repo.CountCurrentMembers(t.Context(), ClubIDWaratah, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("memberships older than a year should lapse, got %d", count)
	}

	if _, err := memberships.Create(t.Context(), rider.Membership{
		RiderID:  1,
		ClubID:   ClubIDLidcombe,
		Date:     time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC),
		Category: rider.MembershipRace,
	}); err != nil {
		t.Fatalf("create membership: %v", err)
	}

	current, found, err := memberships.Current(t.Context(), 1)
	if err != nil || !found {
		t.Fatalf("current: found=%v err=%v", found, err)
	}
	if current.ClubID != ClubIDLidcombe {
		t.Fatalf("latest membership should win: %+v", current)
	}

	count, err = repo.CountCurrentMembers(t.Context(), ClubIDWaratah, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("a transfer should not count at the old club, got %d", count)
	}
	count, err = repo.CountCurrentMembers(t.Context(), ClubIDLidcombe, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("a transfer should count at the new club, got %d", count)
	}
}

func TestRiderRepository_CreateAssignsIDs(t *testing.T) {
	memberships := NewMembershipRepository(nil)
	repo := NewRiderRepository(SeedRiders(), memberships)

	created, err := repo.Create(t.Context(), rider.Rider{Username: "erin-quirk-100005", FirstName: "Erin", LastName: "Quirk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("ids should continue after the seeds, got %d", created.ID)
	}

	created.LastName = "Quirk-Smith"
	if err := repo.Update(t.Context(), created); err != nil {
		t.Fatalf("update: %v", err)
	}
	rd, found, _ := repo.GetByID(t.Context(), created.ID)
	if !found || rd.LastName != "Quirk-Smith" {
		t.Fatalf("update should persist: %+v", rd)
	}
}
