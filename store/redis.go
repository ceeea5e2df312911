package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "kho:"

// RedisStore keeps one hash per collection, fields keyed by record id.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(collection string) string {
	return redisKeyPrefix + collection
}

func wrapRedisError(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %v", ErrorStoreUnavailable, op, err)
}

func (r *RedisStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	collection, id, ok := splitPath(path)
	if !ok {
		return nil, false, errors.New("invalid record path: " + path)
	}
	val, err := r.client.HGet(ctx, redisKey(collection), id).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapRedisError("hget", err)
	}
	return json.RawMessage(val), true, nil
}

func (r *RedisStore) Set(ctx context.Context, path string, value interface{}) error {
	collection, id, ok := splitPath(path)
	if !ok {
		return errors.New("invalid record path: " + path)
	}
	if value == nil {
		if err := r.client.HDel(ctx, redisKey(collection), id).Err(); err != nil {
			return wrapRedisError("hdel", err)
		}
		return nil
	}
	raw, err := marshalValue(value)
	if err != nil {
		return err
	}
	if err := r.client.HSet(ctx, redisKey(collection), id, string(raw)).Err(); err != nil {
		return wrapRedisError("hset", err)
	}
	return nil
}

// Update is a sequential best-effort patch; a mid-batch failure leaves the
// earlier paths written.
func (r *RedisStore) Update(ctx context.Context, changes map[string]interface{}) error {
	for path, value := range changes {
		if err := r.Set(ctx, path, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisStore) GetCollection(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	fields, err := r.client.HGetAll(ctx, redisKey(collection)).Result()
	if err != nil {
		return nil, wrapRedisError("hgetall", err)
	}
	records := make(map[string]json.RawMessage, len(fields))
	for id, val := range fields {
		records[id] = json.RawMessage(val)
	}
	return records, nil
}

func (r *RedisStore) SetCollection(ctx context.Context, collection string, records map[string]interface{}) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, redisKey(collection))
	if len(records) > 0 {
		fields := make(map[string]interface{}, len(records))
		for id, value := range records {
			raw, err := marshalValue(value)
			if err != nil {
				return err
			}
			fields[id] = string(raw)
		}
		pipe.HSet(ctx, redisKey(collection), fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return wrapRedisError("replace "+collection, err)
	}
	return nil
}
