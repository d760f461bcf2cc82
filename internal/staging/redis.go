// Package staging holds the transient pending-booking draft between
// passenger entry and commit. Drafts live in redis under the caller's
// session identity with a TTL; they carry no durability guarantee and
// the commit engine handles their absence.
package staging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aerovia/aerovia/config"
	"github.com/redis/go-redis/v9"
)

type PassengerDraft struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Passport  string `json:"passport,omitempty"`
}

type Draft struct {
	ID         string           `json:"id"`
	FlightID   int64            `json:"flight_id"`
	Passengers []PassengerDraft `json:"passengers"`
	CreatedAt  time.Time        `json:"created_at"`
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

// Put stores the draft under the session, replacing any prior draft.
func (s *RedisStore) Put(ctx context.Context, sessionID string, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(sessionID), payload, s.ttl).Err()
}

// Get returns the staged draft for the session, or nil when none exists.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Draft, error) {
	data, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, draftKey(sessionID)).Err()
}

func draftKey(sessionID string) string {
	return "staging:draft:" + sessionID
}
