package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"weather-app/internal/models"
	"weather-app/internal/repositories/storage"
)

// StorageKey is the key the favorites list lives under.
const StorageKey = "weather-locations"

type Repository interface {
	Load(ctx context.Context) ([]models.Location, error)
	Save(ctx context.Context, locations []models.Location) error
}

// KVRepository stores the whole list as one JSON array in a key-value store.
type KVRepository struct {
	store storage.KeyValueStore
	key   string
}

func NewKVRepository(store storage.KeyValueStore) *KVRepository {
	return &KVRepository{store: store, key: StorageKey}
}

func (r *KVRepository) Load(ctx context.Context) ([]models.Location, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.Location{}, nil
	}
	if err != nil {
		return nil, err
	}

	var locations []models.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	if locations == nil {
		locations = []models.Location{}
	}

	return locations, nil
}

func (r *KVRepository) Save(ctx context.Context, locations []models.Location) error {
	if locations == nil {
		locations = []models.Location{}
	}

	data, err := json.Marshal(locations)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}

	return r.store.Set(ctx, r.key, data)
}
