package cache

import (
	"context"
	"strconv"

	"github.com/openvelo/clubraces/internal/domain/club"
	"github.com/openvelo/clubraces/internal/domain/race"
	basecache "github.com/openvelo/clubraces/internal/platform/cache"
)

// ClubRepository caches the club directory in front of another
// club.Repository. Clubs change rarely, so lookups are served from a TTL
// cache and writes invalidate the whole namespace.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

type cachedClub struct {
	value  club.Club
	exists bool
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, "club:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	key := "club:id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (club.Club, bool, error) {
	key := "club:slug:" + slug
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) (club.Club, error) {
	created, err := r.next.Create(ctx, c)
	if err != nil {
		return club.Club{}, err
	}
	r.cache.DeletePrefix(ctx, "club:")
	return created, nil
}

// CourseRepository caches racecourse lookups. Harvest runs hit the course
// list once per calendar event, so the full list is kept hot.
type CourseRepository struct {
	next  race.CourseRepository
	cache *basecache.Store
}

func NewCourseRepository(next race.CourseRepository, cache *basecache.Store) *CourseRepository {
	return &CourseRepository{next: next, cache: cache}
}

type cachedCourse struct {
	value  race.Course
	exists bool
}

func (r *CourseRepository) List(ctx context.Context) ([]race.Course, error) {
	v, err := r.cache.GetOrLoad(ctx, "course:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]race.Course(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]race.Course)
	return append([]race.Course(nil), items...), nil
}

func (r *CourseRepository) GetByName(ctx context.Context, name string) (race.Course, bool, error) {
	key := "course:name:" + name
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedCourse{value: item, exists: exists}, nil
	})
	if err != nil {
		return race.Course{}, false, err
	}

	cached, _ := v.(cachedCourse)
	return cached.value, cached.exists, nil
}

func (r *CourseRepository) Create(ctx context.Context, c race.Course) (race.Course, error) {
	created, err := r.next.Create(ctx, c)
	if err != nil {
		return race.Course{}, err
	}
	r.cache.DeletePrefix(ctx, "course:")
	return created, nil
}
