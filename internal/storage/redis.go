package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/linkward/linkward/internal/models"
)

const (
	linkKeyPrefix   = "link:"
	tenantKeyPrefix = "tenant:"
)

// RedisStore implements RecordStore on Redis. Link records are JSON
// documents; tenant index entries are sets. Patches are applied with an
// optimistic WATCH transaction so the field mutation and the log append
// land together.
type RedisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, logger: logger}
}

func (s *RedisStore) GetLink(ctx context.Context, id string) (*models.LinkRecord, float64, error) {
	doc, err := s.rdb.Get(ctx, linkKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, costMiss, nil
	}
	if err != nil {
		return nil, costMiss, err
	}

	var rec models.LinkRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, costHit, err
	}
	return &rec, costHit, nil
}

func (s *RedisStore) PutLink(ctx context.Context, record *models.LinkRecord) (float64, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return 0, err
	}

	stored, err := s.rdb.SetNX(ctx, linkKeyPrefix+record.ID, doc, 0).Result()
	if err != nil {
		return costHit, err
	}
	if !stored {
		s.logger.Warn("link id already taken", zap.String("id", record.ID))
		return costHit, ErrConflict
	}
	return costHit, nil
}

func (s *RedisStore) UpdateLink(ctx context.Context, id string, patch LinkPatch) (float64, error) {
	key := linkKeyPrefix + id

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		doc, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var rec models.LinkRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			return err
		}
		patch.Apply(&rec)

		doc, err = json.Marshal(&rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, ErrNotFound) {
		return costMiss, ErrNotFound
	}
	if err != nil {
		return costHit, err
	}
	return costHit, nil
}

func (s *RedisStore) HasTenantLink(ctx context.Context, tenantKey, id string) (bool, float64, error) {
	member, err := s.rdb.SIsMember(ctx, tenantKeyPrefix+tenantKey, id).Result()
	if err != nil {
		return false, costMiss, err
	}
	if !member {
		return false, costMiss, nil
	}
	return true, costHit, nil
}

func (s *RedisStore) AddTenantLink(ctx context.Context, tenantKey, id string) (float64, error) {
	if err := s.rdb.SAdd(ctx, tenantKeyPrefix+tenantKey, id).Err(); err != nil {
		return costHit, err
	}
	return costHit, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
