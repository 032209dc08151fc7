package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"wingman/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:sess:"

// RedisSessionStore keeps sessions as JSON blobs with a TTL, so idle
// conversations age out on their own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	km     *keyedMutex
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, km: newKeyedMutex()}
}

func (s *RedisSessionStore) Update(ctx context.Context, key string, fn func(sess *models.Session) error) error {
	lock := s.km.get(key)
	lock.Lock()
	defer lock.Unlock()

	redisKey := sessionPrefix + key

	sess := models.NewSession()
	data, err := s.client.Get(ctx, redisKey).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(data), sess); err != nil {
			return err
		}
	} else if err != redis.Nil {
		return err
	}

	if err := fn(sess); err != nil {
		return err
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, key string) error {
	lock := s.km.get(key)
	lock.Lock()
	defer lock.Unlock()

	return s.client.Del(ctx, sessionPrefix+key).Err()
}
