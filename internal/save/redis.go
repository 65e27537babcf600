package save

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	redisclient "chosenoffset.com/tilecrawl/internal/redis"
)

// Key pattern: save:{slot}
const saveKeyPrefix = "save:"

// RedisStore keeps each slot as a JSON string value.
type RedisStore struct {
	client redisclient.Client
}

// NewRedisStore creates a store on client.
func NewRedisStore(client redisclient.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("save: redis client is required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) key(slot string) string {
	return saveKeyPrefix + slot
}

// Save stores rec under the slot's key with no expiry.
func (s *RedisStore) Save(ctx context.Context, slot string, rec *Record) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	data, err := encode(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store save record in redis: %w", err)
	}
	return nil
}

// Load fetches the slot's record. A missing key yields ErrNotFound.
func (s *RedisStore) Load(ctx context.Context, slot string) (*Record, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get save record from redis: %w", err)
	}
	return decode(data)
}

// Delete removes the slot's key.
func (s *RedisStore) Delete(ctx context.Context, slot string) error {
	if err := validateSlot(slot); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("failed to delete save record from redis: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
