package club

import "context"

// Repository provides access to club records.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetByID(ctx context.Context, id int64) (Club, bool, error)
	GetBySlug(ctx context.Context, slug string) (Club, bool, error)
	Create(ctx context.Context, c Club) (Club, error)
}
