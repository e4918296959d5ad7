package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations remembers artifacts that were logged out or rejected by the
// backend so a copied cookie cannot be replayed until it would have expired.
type Revocations interface {
	Revoke(ctx context.Context, artifact string, ttl time.Duration) error
	IsRevoked(ctx context.Context, artifact string) (bool, error)
}

// RedisRevocations stores artifact digests in Redis.
type RedisRevocations struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocations constructs a Redis backed revocation list.
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client, prefix: "session:revoked:"}
}

// Revoke records the artifact digest for ttl.
func (r *RedisRevocations) Revoke(ctx context.Context, artifact string, ttl time.Duration) error {
	if r == nil || r.client == nil || artifact == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = ExtendedMaxAge
	}
	return r.client.Set(ctx, r.key(artifact), 1, ttl).Err()
}

// IsRevoked reports whether the artifact was revoked.
func (r *RedisRevocations) IsRevoked(ctx context.Context, artifact string) (bool, error) {
	if r == nil || r.client == nil || artifact == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.key(artifact)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRevocations) key(artifact string) string {
	sum := sha256.Sum256([]byte(artifact))
	return r.prefix + hex.EncodeToString(sum[:])
}
