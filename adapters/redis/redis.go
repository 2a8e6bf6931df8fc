// Package redis provides a session cache adapter backed by go-redis,
// for deployments where handlers scale past a single process and the
// in-memory cache stops being useful.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lborres/bantay"
)

const defaultKeyPrefix = "bantay:session"

type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ bantay.Cache = (*Cache)(nil)

func New(client redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    ttl,
	}
}

func (c *Cache) key(tokenHash string) string {
	return c.prefix + ":" + tokenHash
}

// cachedSession carries every field across the wire, including the
// ones the public model hides from JSON responses.
type cachedSession struct {
	ID          string      `json:"id"`
	TokenHash   string      `json:"tokenHash"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        bantay.Role `json:"role"`
	LoggedIn    bool        `json:"loggedIn"`
	Regenerated bool        `json:"regenerated"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (c *Cache) Get(tokenHash string) (*bantay.SessionRecord, error) {
	payload, err := c.client.Get(context.Background(), c.key(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, bantay.ErrCacheNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cached cachedSession
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("decode cached session: %w", err)
	}

	return &bantay.SessionRecord{
		ID:          cached.ID,
		TokenHash:   cached.TokenHash,
		UserID:      cached.UserID,
		Name:        cached.Name,
		Email:       cached.Email,
		Role:        cached.Role,
		LoggedIn:    cached.LoggedIn,
		Regenerated: cached.Regenerated,
		ExpiresAt:   cached.ExpiresAt,
		CreatedAt:   cached.CreatedAt,
		UpdatedAt:   cached.UpdatedAt,
	}, nil
}

func (c *Cache) Set(tokenHash string, record *bantay.SessionRecord) error {
	payload, err := json.Marshal(cachedSession{
		ID:          record.ID,
		TokenHash:   record.TokenHash,
		UserID:      record.UserID,
		Name:        record.Name,
		Email:       record.Email,
		Role:        record.Role,
		LoggedIn:    record.LoggedIn,
		Regenerated: record.Regenerated,
		ExpiresAt:   record.ExpiresAt,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode cached session: %w", err)
	}

	if err := c.client.Set(context.Background(), c.key(tokenHash), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Delete(tokenHash string) error {
	if err := c.client.Del(context.Background(), c.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *Cache) Clear() error {
	ctx := context.Background()
	iter := c.client.Scan(ctx, 0, c.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}
