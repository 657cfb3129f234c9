package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openvelo/clubraces/internal/domain/club"
	clubmock "github.com/openvelo/clubraces/internal/mocks/domain/club"
	"github.com/stretchr/testify/mock"
)

func TestClubService_GetClub_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClubFixture(t)
	clubRepo := clubmock.NewRepository(t)

	service := NewClubService(clubRepo, f.races, f.results, f.riders, nil)
	expected := club.Club{ID: 1, Slug: "waratah", Name: "Waratah Masters"}

	clubRepo.
		On("GetBySlug", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "waratah").
		Return(expected, true, nil).
		Once()

	got, err := service.GetClub(ctx, " Waratah ")
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if got.ID != expected.ID || got.Slug != expected.Slug {
		t.Fatalf("unexpected club: got=%+v want=%+v", got, expected)
	}
}

func TestClubService_GetClub_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	f := newClubFixture(t)
	clubRepo := clubmock.NewRepository(t)

	service := NewClubService(clubRepo, f.races, f.results, f.riders, nil)

	clubRepo.
		On("GetBySlug", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "gotham").
		Return(club.Club{}, false, nil).
		Once()

	_, err := service.GetClub(context.Background(), "gotham")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
