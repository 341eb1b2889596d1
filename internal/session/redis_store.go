package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a hash under "sess:<id>" with a TTL, so
// abandoned logins expire without any sweeper process.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore { return &RedisStore{Client: client} }

func sessionKey(sid string) string { return "sess:" + sid }

func (s *RedisStore) Create(ctx context.Context, ident Identity, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	key := sessionKey(sid)
	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, key,
		"role", ident.Role,
		"user_id", strconv.FormatUint(ident.UserID, 10),
		"email", ident.Email,
	)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (Identity, bool, error) {
	vals, err := s.Client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return Identity{}, false, err
	}
	if len(vals) == 0 {
		return Identity{}, false, nil
	}
	uid, _ := strconv.ParseUint(vals["user_id"], 10, 64)
	return Identity{Role: vals["role"], UserID: uid, Email: vals["email"]}, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.Client.Del(ctx, sessionKey(sid)).Err()
}
