package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"docconnect/internal/config"
	"docconnect/internal/ids"
	"docconnect/internal/models"
	"docconnect/internal/repository"
	"docconnect/internal/security"
)

var (
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNoUserWithEmail     = errors.New("no user found with this email address")
	ErrNewPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidRole         = errors.New("role must be patient or doctor")
)

const (
	minLoginPassword = 6
	minNewPassword   = 8
)

// SessionClearer is the part of a session store that logout needs.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// AuthService simulates the remote authentication API. Every call waits for
// its configured delay before touching the user list, and gives up early if
// ctx is cancelled.
type AuthService struct {
	users      repository.UserRepository
	mailer     Mailer
	delays     config.DelayConfig
	avatarBase string
	now        func() time.Time
	log        zerolog.Logger
}

func NewAuthService(users repository.UserRepository, mailer Mailer, cfg config.MockConfig, log zerolog.Logger) *AuthService {
	if mailer == nil {
		mailer = NewLogMailer(log)
	}
	return &AuthService{
		users:      users,
		mailer:     mailer,
		delays:     cfg.Delays,
		avatarBase: cfg.AvatarBaseURL,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if err := wait(ctx, s.delays.Login); err != nil {
		return AuthResult{}, err
	}

	if utf8.RuneCountInString(password) < minLoginPassword {
		return AuthResult{}, ErrPasswordTooShort
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	s.log.Debug().Str("user_id", user.ID).Msg("mock login")
	return AuthResult{User: user, Token: security.NewMockToken(s.now())}, nil
}

func (s *AuthService) Register(ctx context.Context, reg models.Registration) (AuthResult, error) {
	if err := wait(ctx, s.delays.Register); err != nil {
		return AuthResult{}, err
	}

	role := reg.Role
	if role == "" {
		role = models.UserRolePatient
	}
	if role != models.UserRolePatient && role != models.UserRoleDoctor {
		return AuthResult{}, ErrInvalidRole
	}

	now := s.now()
	user := models.User{
		ID:          ids.New(),
		Email:       normalizeEmail(reg.Email),
		Name:        strings.TrimSpace(reg.Name),
		Role:        role,
		Avatar:      s.placeholderAvatar(reg.Name),
		Phone:       reg.Phone,
		DateOfBirth: reg.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if role == models.UserRoleDoctor && reg.Doctor != nil {
		doc := reg.Doctor.Clone()
		user.Doctor = &doc
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("mock user registered")
	return AuthResult{User: user.Clone(), Token: security.NewMockToken(now)}, nil
}

// Logout clears the caller's stored session after the logout delay.
func (s *AuthService) Logout(ctx context.Context, sessions SessionClearer) error {
	if err := wait(ctx, s.delays.Logout); err != nil {
		return err
	}
	if sessions == nil {
		return nil
	}
	return sessions.Clear(ctx)
}

func (s *AuthService) RefreshToken(ctx context.Context) (string, error) {
	if err := wait(ctx, s.delays.Refresh); err != nil {
		return "", err
	}
	return security.NewRefreshedToken(s.now()), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	if err := wait(ctx, s.delays.UpdateProfile); err != nil {
		return models.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		update.Email = &email
	}
	updated := user.Apply(update)
	updated.UpdatedAt = s.now()

	if err := s.users.Update(ctx, updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// ForgotPassword queues a reset message for a known email. Mail delivery
// problems are logged and do not fail the request.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := wait(ctx, s.delays.ForgotPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNoUserWithEmail
		}
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, ids.New()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("enqueue password reset failed")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := wait(ctx, s.delays.ResetPassword); err != nil {
		return err
	}
	if utf8.RuneCountInString(newPassword) < minNewPassword {
		return ErrNewPasswordTooShort
	}
	s.log.Debug().Bool("has_token", token != "").Msg("mock password reset")
	return nil
}

// ChangePassword does not check currentPassword; nothing stores passwords.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := wait(ctx, s.delays.ChangePassword); err != nil {
		return err
	}
	if utf8.RuneCountInString(newPassword) < minNewPassword {
		return ErrNewPasswordTooShort
	}

	// The notice is best effort; an unknown user only means no mail.
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("password changed notice skipped")
		return nil
	}
	if err := s.mailer.SendPasswordChanged(ctx, user.Email); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("enqueue password changed notice failed")
	}
	return nil
}

func (s *AuthService) placeholderAvatar(name string) string {
	var initials strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		initials.WriteRune(r[0])
	}
	return fmt.Sprintf("%s?text=%s", s.avatarBase, url.QueryEscape(initials.String()))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
