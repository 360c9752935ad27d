package redisstore

import (
	"context"
	"errors"
	"time"

	"pet-companion/internal/state"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "petcompanion:snapshot:"
	DefaultTTL = 7 * 24 * time.Hour
)

// Connect abre el cliente y verifica la conexión.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 4
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// SnapshotStore implementa state.SnapshotStore con TTL: un snapshot viejo se descarta solo.
type SnapshotStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSnapshotStore(rdb redis.Cmdable, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotStore{rdb: rdb, ttl: ttl}
}

func key(userID string, sl state.Slice) string {
	return keyPrefix + userID + ":" + string(sl)
}

func (s *SnapshotStore) Save(ctx context.Context, userID string, sl state.Slice, payload []byte) error {
	return s.rdb.Set(ctx, key(userID, sl), payload, s.ttl).Err()
}

func (s *SnapshotStore) Load(ctx context.Context, userID string, sl state.Slice) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key(userID, sl)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}
