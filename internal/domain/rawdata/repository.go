package rawdata

import "context"

type Repository interface {
	Save(ctx context.Context, p Payload) error
}
