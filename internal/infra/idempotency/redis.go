package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:production_order:"

type record struct {
	RequestHash string `json:"request_hash"`
	Status      string `json:"status"`
	ResultID    string `json:"result_id,omitempty"`
}

func (r record) toCommand(key string) *commands.IdempotencyRecord {
	return &commands.IdempotencyRecord{
		Key:         key,
		RequestHash: r.RequestHash,
		Status:      r.Status,
		ResultID:    r.ResultID,
	}
}

// RedisStore keeps idempotency records as JSON values that expire after ttl.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errs.Wrap(err, "invalid redis URL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to connect to redis")
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Begin(ctx context.Context, key, requestHash string) (*commands.IdempotencyRecord, bool, error) {
	data, err := json.Marshal(record{RequestHash: requestHash, Status: commands.IdempotencyProcessing})
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to encode idempotency record")
	}

	claimed, err := s.client.SetNX(ctx, keyPrefix+key, data, s.ttl).Result()
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to claim idempotency key")
	}
	if claimed {
		return nil, true, nil
	}

	existing, err := s.get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Expired between SETNX and GET.
		return s.Begin(ctx, key, requestHash)
	}
	return existing.toCommand(key), false, nil
}

func (s *RedisStore) Complete(ctx context.Context, key, resultID string) error {
	existing, err := s.get(ctx, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.Newf("idempotency key %s expired before completion", key)
	}

	existing.Status = commands.IdempotencyCompleted
	existing.ResultID = resultID
	data, err := json.Marshal(existing)
	if err != nil {
		return errs.Wrap(err, "failed to encode idempotency record")
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, redis.KeepTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to complete idempotency key")
	}
	return nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errs.Wrap(err, "failed to release idempotency key")
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string) (*record, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to read idempotency key")
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(err, "failed to decode idempotency record")
	}
	return &rec, nil
}
