package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/cart"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

type CartRedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DI
func NewCartRedisStore(client *redis.Client, ttl time.Duration) repo.CartStore {
	return &CartRedisStore{client: client, ttl: ttl}
}

func (s *CartRedisStore) key(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// スナップショット全体をJSONで上書き保存
func (s *CartRedisStore) Save(ctx context.Context, sessionID string, state cart.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

// 保存済みスナップショットを復元。無ければfound=false
func (s *CartRedisStore) Load(ctx context.Context, sessionID string) (cart.State, bool, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return cart.Empty(), false, nil
	}
	if err != nil {
		return cart.Empty(), false, err
	}

	var state cart.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return cart.Empty(), false, err
	}

	return state, true, nil
}
