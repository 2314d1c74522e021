package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"homevest/internal/draft/models"
	"homevest/pkg/domain"
	"homevest/pkg/platform/sentinel"
)

// RedisStore persists drafts as JSON blobs keyed by property type so a draft
// survives process restarts. Fields absent from a previously stored version
// decode to their zero values; there is no schema migration beyond that
// best-effort defaulting.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func draftKey(pt domain.PropertyType) string {
	return "draft:" + pt.String()
}

func (s *RedisStore) Load(ctx context.Context, pt domain.PropertyType) (*models.PropertyDraft, error) {
	data, err := s.client.Get(ctx, draftKey(pt)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load draft %s: %w", pt, err)
	}

	draft := models.NewDraft(pt)
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", pt, err)
	}
	// A stored blob predating the type field still belongs to its key.
	draft.Type = pt
	return draft, nil
}

func (s *RedisStore) Save(ctx context.Context, draft *models.PropertyDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", draft.Type, err)
	}
	if err := s.client.Set(ctx, draftKey(draft.Type), data, 0).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", draft.Type, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, pt domain.PropertyType) error {
	if err := s.client.Del(ctx, draftKey(pt)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", pt, err)
	}
	return nil
}
