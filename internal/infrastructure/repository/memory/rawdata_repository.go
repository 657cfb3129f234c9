package memory

import (
	"context"
	"sync"

	"github.com/openvelo/clubraces/internal/domain/rawdata"
)

type RawDataRepository struct {
	mu    sync.RWMutex
	items map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{items: map[string]rawdata.Payload{}}
}

func (r *RawDataRepository) Save(_ context.Context, p rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.Source+"|"+p.EntityType+"|"+p.EntityKey] = p

	return nil
}
