package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

// consumeScript deletes the state key only when its stored provider
// matches, as one indivisible step. Returns 1 on a valid consume, 0 when
// the key is missing or expired, -1 on a provider mismatch (key kept).
var consumeScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
	return 0
end
if v ~= ARGV[1] then
	return -1
end
redis.call("DEL", KEYS[1])
return 1
`)

// RedisStateRepository implements StateRepository on Redis, relying on
// key TTL for expiry.
type RedisStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func makeStateKey(token string) string {
	return fmt.Sprintf("oauth_state:%s", token)
}

func NewRedisStateRepository(client *redis.Client, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{client: client, ttl: ttl}
}

func (r *RedisStateRepository) Issue(ctx context.Context, provider models.Provider) (string, error) {
	token := uuid.NewString()
	if err := r.client.Set(ctx, makeStateKey(token), provider.String(), r.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return token, nil
}

func (r *RedisStateRepository) Consume(ctx context.Context, token string, provider models.Provider) (bool, error) {
	res, err := consumeScript.Run(ctx, r.client, []string{makeStateKey(token)}, provider.String()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return res == 1, nil
}

var _ repository.StateRepository = (*RedisStateRepository)(nil)
