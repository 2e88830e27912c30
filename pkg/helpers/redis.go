package helpers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Tokens are denylisted by digest so the raw JWT never lands in Redis.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:revoked:" + hex.EncodeToString(sum[:])
}

// RevokeToken denylists a session token until its natural expiry.
func RevokeToken(ctx context.Context, rdb *redis.Client, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsTokenRevoked reports whether the token has been denylisted by a logout.
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, token string) (bool, error) {
	_, err := rdb.Get(ctx, revokedKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
