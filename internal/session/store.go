package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brokerweb/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	themeKeyPrefix   = "prefs:theme:"
)

// KV is the slice of the cache client the session store needs. *cache.Client
// satisfies it; tests substitute a map.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// record is the durable shape of a session. VerifiedAt tracks the last time
// the cached user was confirmed against the backend's /auth/me.
type record struct {
	Token      string     `json:"token"`
	User       model.User `json:"user"`
	VerifiedAt time.Time  `json:"verified_at"`
}

// Store persists sessions and the theme preference, the only durable state
// this application owns.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a session store with the given session lifetime.
func NewStore(kv KV, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Save writes a freshly authenticated session. The session counts as
// verified now, since it was just issued by the backend.
func (s *Store) Save(ctx context.Context, sid string, sess model.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to store partial session")
	}
	return s.write(ctx, sid, record{Token: sess.Token, User: sess.User, VerifiedAt: time.Now()})
}

// Get loads a session. A missing record, or one missing either token or
// user, reads as absent (nil, zero time, nil error).
func (s *Store) Get(ctx context.Context, sid string) (*model.Session, time.Time, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+sid)
	if err != nil || data == nil {
		return nil, time.Time{}, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Unreadable state is torn down rather than left half-populated.
		_ = s.kv.Delete(ctx, sessionKeyPrefix+sid)
		return nil, time.Time{}, nil
	}

	sess := model.Session{Token: rec.Token, User: rec.User}
	if !sess.Valid() {
		_ = s.kv.Delete(ctx, sessionKeyPrefix+sid)
		return nil, time.Time{}, nil
	}
	return &sess, rec.VerifiedAt, nil
}

// MarkVerified refreshes the cached user record after a successful /auth/me
// round-trip and stamps the verification time.
func (s *Store) MarkVerified(ctx context.Context, sid, token string, user model.User) error {
	return s.write(ctx, sid, record{Token: token, User: user, VerifiedAt: time.Now()})
}

// Delete tears a session down completely: token and cached user go together,
// never one without the other.
func (s *Store) Delete(ctx context.Context, sid string) error {
	_ = s.kv.Delete(ctx, themeKeyPrefix+sid)
	return s.kv.Delete(ctx, sessionKeyPrefix+sid)
}

// Touch extends a live session's TTL.
func (s *Store) Touch(ctx context.Context, sid string) error {
	return s.kv.Expire(ctx, sessionKeyPrefix+sid, s.ttl)
}

// SaveTheme persists the UI theme preference.
func (s *Store) SaveTheme(ctx context.Context, sid, theme string) error {
	return s.kv.Set(ctx, themeKeyPrefix+sid, []byte(theme), s.ttl)
}

// Theme returns the stored theme, empty when unset.
func (s *Store) Theme(ctx context.Context, sid string) (string, error) {
	data, err := s.kv.Get(ctx, themeKeyPrefix+sid)
	if err != nil || data == nil {
		return "", nil
	}
	return string(data), nil
}

func (s *Store) write(ctx context.Context, sid string, rec record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+sid, payload, s.ttl)
}
