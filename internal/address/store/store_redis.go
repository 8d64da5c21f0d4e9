package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cleanhome/internal/address/models"
	"cleanhome/pkg/platform/sentinel"
	"cleanhome/pkg/requestcontext"
)

const keyPrefix = "cleanhome:address:session:"

// Redis stores form sessions as JSON values whose key TTL tracks the
// session's ExpiresAt, so expiry needs no sweeping.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed session store.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *Redis) Create(ctx context.Context, session *models.Session) error {
	payload, ttl, err := encode(ctx, session)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("create address session: %w", err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get address session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode address session: %w", err)
	}
	return &session, nil
}

// Save overwrites an existing session and refreshes its TTL.
func (s *Redis) Save(ctx context.Context, session *models.Session) error {
	payload, ttl, err := encode(ctx, session)
	if err != nil {
		return err
	}
	_, err = s.client.SetArgs(ctx, sessionKey(session.ID), payload, redis.SetArgs{Mode: "XX", TTL: ttl}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("save address session: %w", err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete address session: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts sessions through key TTLs.
func (s *Redis) DeleteExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func encode(ctx context.Context, session *models.Session) ([]byte, time.Duration, error) {
	ttl := session.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return nil, 0, fmt.Errorf("address session %s already expired", session.ID)
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, 0, fmt.Errorf("encode address session: %w", err)
	}
	return payload, ttl, nil
}
