package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"orderdesk/internal/domain"
)

const (
	keyToken        = "session:token"
	keyRefreshToken = "session:refreshToken"
	keyUser         = "session:user"
)

// RedisStore persists the session trio as three keys, so console instances
// behind one Redis share a login and teardown clears everything at once.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Load() (*State, error) {
	ctx := context.Background()
	values, err := s.Client.MGet(ctx, keyToken, keyRefreshToken, keyUser).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	state := &State{}
	if token, ok := values[0].(string); ok {
		state.Token = token
	}
	if refresh, ok := values[1].(string); ok {
		state.RefreshToken = refresh
	}
	if raw, ok := values[2].(string); ok && raw != "" {
		var profile domain.Profile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
		state.User = &profile
	}
	if state.Token == "" && state.User == nil {
		return nil, nil
	}
	return state, nil
}

func (s *RedisStore) Save(state *State) error {
	ctx := context.Background()
	rawUser, err := json.Marshal(state.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyToken, state.Token, 0)
		pipe.Set(ctx, keyRefreshToken, state.RefreshToken, 0)
		pipe.Set(ctx, keyUser, rawUser, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	if err := s.Client.Del(context.Background(), keyToken, keyRefreshToken, keyUser).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
