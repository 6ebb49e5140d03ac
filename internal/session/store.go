// Package session persists the signed-in user and token of one browser.
//
// A Store without a Medium is valid: every write is dropped and every read
// reports no session, which mirrors running without local storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"docconnect/internal/models"
)

const (
	UserKey  = "doct_user"
	TokenKey = "doct_token"
)

type Store struct {
	medium Medium
	scope  string
	log    zerolog.Logger
}

// NewStore binds a Store to medium under scope, typically a browser id.
func NewStore(medium Medium, scope string, log zerolog.Logger) *Store {
	return &Store{medium: medium, scope: scope, log: log}
}

func (s *Store) key(name string) string {
	if s.scope == "" {
		return name
	}
	return s.scope + ":" + name
}

// SetSession overwrites any previous session of this scope.
func (s *Store) SetSession(ctx context.Context, user models.User, token string) error {
	if s.medium == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.medium.Set(ctx, s.key(UserKey), string(raw)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	if err := s.medium.Set(ctx, s.key(TokenKey), token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// User returns nil when nothing is stored or the stored value is unreadable.
func (s *Store) User(ctx context.Context) *models.User {
	if s.medium == nil {
		return nil
	}
	raw, ok, err := s.medium.Get(ctx, s.key(UserKey))
	if err != nil {
		s.log.Debug().Err(err).Str("scope", s.scope).Msg("read stored user failed")
		return nil
	}
	if !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Debug().Err(err).Str("scope", s.scope).Msg("stored user is not valid json")
		return nil
	}
	return &user
}

func (s *Store) Token(ctx context.Context) (string, bool) {
	if s.medium == nil {
		return "", false
	}
	token, ok, err := s.medium.Get(ctx, s.key(TokenKey))
	if err != nil {
		s.log.Debug().Err(err).Str("scope", s.scope).Msg("read stored token failed")
		return "", false
	}
	return token, ok
}

// Clear removes both keys. Clearing an empty scope is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if s.medium == nil {
		return nil
	}
	return s.medium.Delete(ctx, s.key(UserKey), s.key(TokenKey))
}

func (s *Store) IsAuthenticated(ctx context.Context) bool {
	if s.User(ctx) == nil {
		return false
	}
	_, ok := s.Token(ctx)
	return ok
}

func (s *Store) HasRole(ctx context.Context, role models.UserRole) bool {
	user := s.User(ctx)
	return user != nil && user.Role == role
}

func (s *Store) IsDoctor(ctx context.Context) bool  { return s.HasRole(ctx, models.UserRoleDoctor) }
func (s *Store) IsPatient(ctx context.Context) bool { return s.HasRole(ctx, models.UserRolePatient) }
func (s *Store) IsAdmin(ctx context.Context) bool   { return s.HasRole(ctx, models.UserRoleAdmin) }

// AuthHeaders returns the bearer header for outgoing calls, or an empty map.
func (s *Store) AuthHeaders(ctx context.Context) map[string]string {
	token, ok := s.Token(ctx)
	if !ok || token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
