package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionData is what a session cookie resolves to. A zero SubjectID marks
// an anonymous visitor that only carries flash messages.
type SessionData struct {
	SubjectID uint   `json:"subject_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

func (d *SessionData) Authenticated() bool {
	return d != nil && d.SubjectID != 0 && d.Role != ""
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Store keeps sessions and their pending flash messages. Get returns nil
// data and no error for an unknown session.
type Store interface {
	Create(ctx context.Context, sessionID string, data SessionData) error
	Get(ctx context.Context, sessionID string) (*SessionData, error)
	Delete(ctx context.Context, sessionID string) error
	Extend(ctx context.Context, sessionID string) error
	AddFlash(ctx context.Context, sessionID string, f Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)
}

// SessionService is the Redis backed Store.
type SessionService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionService(host string, port int, password string, db int, ttl time.Duration) (*SessionService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string { return "session:" + id }
func flashKey(id string) string { return "flash:" + id }

func (s *SessionService) Create(ctx context.Context, sessionID string, data SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err()
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID), flashKey(sessionID)).Err()
}

func (s *SessionService) Extend(ctx context.Context, sessionID string) error {
	return s.client.Expire(ctx, sessionKey(sessionID), s.ttl).Err()
}

func (s *SessionService) AddFlash(ctx context.Context, sessionID string, f Flash) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, flashKey(sessionID), raw)
		pipe.Expire(ctx, flashKey(sessionID), s.ttl)
		return nil
	})
	return err
}

// PopFlashes returns and clears the pending messages in insertion order.
func (s *SessionService) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, flashKey(sessionID), 0, -1)
		pipe.Del(ctx, flashKey(sessionID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	flashes := make([]Flash, 0, len(lrange.Val()))
	for _, raw := range lrange.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *SessionService) Close() error {
	return s.client.Close()
}
