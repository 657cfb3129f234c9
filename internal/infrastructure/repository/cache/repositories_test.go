package cache

import (
	"testing"
	"time"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/race"
	"github.com/openvelo/clubraces/internal/infrastructure/repository/memory"
	basecache "github.com/openvelo/clubraces/internal/platform/cache"
)

func TestClubRepository_CachesLookups(t *testing.T) {
	next := memory.NewClubRepository(memory.SeedClubs())
	repo := NewClubRepository(next, basecache.NewStore(time.Minute))

	before, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := next.Create(t.Context(), club.Club{Slug: "penrith", Name: "Penrith"}); err != nil {
		t.Fatalf("create behind the cache: %v", err)
	}

	after, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("writes behind the cache must not show up before the TTL: before=%d after=%d", len(before), len(after))
	}
}

func TestClubRepository_CreateInvalidates(t *testing.T) {
	next := memory.NewClubRepository(memory.SeedClubs())
	repo := NewClubRepository(next, basecache.NewStore(time.Minute))

	before, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if _, err := repo.Create(t.Context(), club.Club{Slug: "penrith", Name: "Penrith"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("create must drop the cached list: before=%d after=%d", len(before), len(after))
	}
}

func TestCourseRepository_CreateInvalidates(t *testing.T) {
	next := memory.NewCourseRepository(memory.SeedCourses())
	repo := NewCourseRepository(next, basecache.NewStore(time.Minute))

	if _, found, err := repo.GetByName(t.Context(), "Unknown"); err != nil || found {
		t.Fatalf("expected miss: found=%v err=%v", found, err)
	}

	if _, err := repo.Create(t.Context(), race.Course{Name: "Unknown"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, found, err := repo.GetByName(t.Context(), "Unknown"); err != nil || !found {
		t.Fatalf("create must drop the cached miss: found=%v err=%v", found, err)
	}
}
