package redis

import (
	"context"
	"strconv"
	"time"

	redisclient "github.com/placemarkhq/placemark/cmd/redis"
)

// Repository is the session registry. A session is one issued token id (jti)
// mapped to a user id; deleting the key revokes the token immediately,
// without waiting for its expiry.
type Repository interface {
	SetSession(ctx context.Context, jti string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, jti string) (uint64, error)
	DeleteSession(ctx context.Context, jti string) error
	DeleteUserSessions(ctx context.Context, userID uint64) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

const sessionPrefix = "session:"

// SetSession stores jti -> userID with the token's TTL, and indexes the jti
// under the user so all of a user's sessions can be dropped at once.
func (r *redis) SetSession(ctx context.Context, jti string, userID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	if err := client.Set(ctx, sessionPrefix+jti, userID, ttl).Err(); err != nil {
		return err
	}
	userKey := userSessionsKey(userID)
	if err := client.SAdd(ctx, userKey, jti).Err(); err != nil {
		return err
	}
	return client.Expire(ctx, userKey, ttl).Err()
}

// GetSession retrieves the userID a jti was issued to.
func (r *redis) GetSession(ctx context.Context, jti string) (uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, nil
	}
	return client.Get(ctx, sessionPrefix+jti).Uint64()
}

// DeleteSession revokes one session.
func (r *redis) DeleteSession(ctx context.Context, jti string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, sessionPrefix+jti).Err()
}

// DeleteUserSessions revokes every session of one user. Called when the
// user is deleted so stale tokens stop validating right away.
func (r *redis) DeleteUserSessions(ctx context.Context, userID uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	userKey := userSessionsKey(userID)
	jtis, err := client.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}
	for _, jti := range jtis {
		if err := client.Del(ctx, sessionPrefix+jti).Err(); err != nil {
			return err
		}
	}
	return client.Del(ctx, userKey).Err()
}

func userSessionsKey(userID uint64) string {
	return "user_sessions:" + strconv.FormatUint(userID, 10)
}
