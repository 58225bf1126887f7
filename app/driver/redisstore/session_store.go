package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"tenant-auth-service/app/domain"
	"tenant-auth-service/app/port"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists the single session slot as a JSON envelope under
// one fixed Redis key. A new login overwrites the slot in place; there
// is never more than one record.
type SessionStore struct {
	client  redis.UniversalClient
	slotKey string
	logger  *slog.Logger
}

// NewSessionStore creates a Redis-backed session slot store.
func NewSessionStore(client redis.UniversalClient, slotKey string, logger *slog.Logger) port.SessionStore {
	return &SessionStore{
		client:  client,
		slotKey: slotKey,
		logger:  logger.With("component", "session_store"),
	}
}

// Save marshals the envelope and overwrites the slot. No TTL: liveness
// is re-validated against storage on every restore, not by expiry.
func (s *SessionStore) Save(ctx context.Context, session *domain.PersistedSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return domain.NewStoreError("session_save", err)
	}

	if err := s.client.Set(ctx, s.slotKey, payload, 0).Err(); err != nil {
		s.logger.Error("failed to write session slot", "error", err)
		return domain.NewStoreError("session_save", err)
	}

	s.logger.Debug("session slot written", "uid", session.UID, "role", session.Role)
	return nil
}

// Load returns the persisted envelope, or (nil, nil) when the slot is
// empty. A corrupt payload is treated as a storage error so the caller
// can clear the slot.
func (s *SessionStore) Load(ctx context.Context) (*domain.PersistedSession, error) {
	raw, err := s.client.Get(ctx, s.slotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("failed to read session slot", "error", err)
		return nil, domain.NewStoreError("session_load", err)
	}

	var session domain.PersistedSession
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Warn("session slot holds unreadable payload", "error", err)
		return nil, domain.NewStoreError("session_load", err)
	}

	return &session, nil
}

// Clear empties the slot. Deleting an absent key is already a no-op in
// Redis, so clearing twice is safe.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.slotKey).Err(); err != nil {
		s.logger.Error("failed to clear session slot", "error", err)
		return domain.NewStoreError("session_clear", err)
	}
	return nil
}

// Config holds connection settings for the session slot store.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient creates a Redis client for the session store.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
