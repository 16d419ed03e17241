package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"schedulerapi/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	// Supplier caching (owner-scoped keys, so a cached entry can never leak
	// across owners)
	GetSupplier(ctx context.Context, userID, supplierID uuid.UUID) (*models.Supplier, error)
	SetSupplier(ctx context.Context, supplier *models.Supplier, ttl time.Duration) error
	DeleteSupplier(ctx context.Context, userID, supplierID uuid.UUID) error

	// Token denylist for revocation
	RevokeToken(ctx context.Context, digest string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, digest string) (bool, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func supplierKey(userID, supplierID uuid.UUID) string {
	return fmt.Sprintf("scheduler:supplier:%s:%s", userID.String(), supplierID.String())
}

func denylistKey(digest string) string {
	return fmt.Sprintf("scheduler:denylist:%s", digest)
}

func (r *redisCacheService) GetSupplier(ctx context.Context, userID, supplierID uuid.UUID) (*models.Supplier, error) {
	data, err := r.client.Get(ctx, supplierKey(userID, supplierID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	supplier := &models.Supplier{}
	if err := json.Unmarshal(data, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *redisCacheService) SetSupplier(ctx context.Context, supplier *models.Supplier, ttl time.Duration) error {
	data, err := json.Marshal(supplier)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, supplierKey(supplier.UserID, supplier.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteSupplier(ctx context.Context, userID, supplierID uuid.UUID) error {
	return r.client.Del(ctx, supplierKey(userID, supplierID)).Err()
}

func (r *redisCacheService) RevokeToken(ctx context.Context, digest string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to deny
		return nil
	}
	return r.client.Set(ctx, denylistKey(digest), "revoked", ttl).Err()
}

func (r *redisCacheService) IsTokenRevoked(ctx context.Context, digest string) (bool, error) {
	err := r.client.Get(ctx, denylistKey(digest)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
