package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campuseats/gateway/internal/models"
	"github.com/go-redis/redis/v8"
)

var ErrNotFound = errors.New("session not found")

// Session is the explicit per-login state object. It is populated once at
// login and passed by value into handlers and the checkout sequencer;
// nothing reads profile fields from ambient storage.
type Session struct {
	AccountID    string              `json:"accountId"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	MobileNumber string              `json:"mobileNumber"`
	Role         string              `json:"role"`
	UserCategory models.UserCategory `json:"userCategory"`
}

// FromProfile builds the session view of an account store profile.
func FromProfile(p models.Profile) Session {
	return Session{
		AccountID:    p.ID,
		Name:         p.Name,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		Role:         p.Role,
		UserCategory: p.UserCategory,
	}
}

// Store keeps sessions in Redis keyed by a digest of the access token.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}

func (s *Store) Put(ctx context.Context, token string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKey(token)).Err()
}
