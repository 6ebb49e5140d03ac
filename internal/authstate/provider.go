// Package authstate holds the signed-in state of one browser and keeps it
// in step with the session store and the auth backend.
package authstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"docconnect/internal/models"
	"docconnect/internal/service"
)

var (
	ErrNotAuthenticated = errors.New("no user logged in")
	ErrBusy             = errors.New("another request of this kind is still running")
)

type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Backend is the capability set the provider consumes.
type Backend interface {
	Login(ctx context.Context, email, password string) (service.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (service.AuthResult, error)
	Logout(ctx context.Context, sessions service.SessionClearer) error
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error)
}

// Sessions is implemented by session.Store.
type Sessions interface {
	SetSession(ctx context.Context, user models.User, token string) error
	User(ctx context.Context) *models.User
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

type op string

const (
	opInit          op = "init"
	opLogin         op = "login"
	opRegister      op = "register"
	opLogout        op = "logout"
	opUpdateProfile op = "update_profile"
)

type Provider struct {
	backend  Backend
	sessions Sessions
	notifier Notifier
	log      zerolog.Logger

	mu          sync.Mutex
	user        *models.User
	initialized bool
	inflight    map[op]bool
}

func NewProvider(backend Backend, sessions Sessions, notifier Notifier, log zerolog.Logger) *Provider {
	if notifier == nil {
		notifier = discard{}
	}
	return &Provider{
		backend:  backend,
		sessions: sessions,
		notifier: notifier,
		log:      log,
		inflight: make(map[op]bool),
	}
}

// Init restores a stored session. Later calls are no-ops.
func (p *Provider) Init(ctx context.Context) {
	p.mu.Lock()
	if p.initialized || p.inflight[opInit] {
		p.mu.Unlock()
		return
	}
	p.inflight[opInit] = true
	p.mu.Unlock()

	user := p.sessions.User(ctx)
	_, hasToken := p.sessions.Token(ctx)

	if user == nil && hasToken {
		p.log.Debug().Msg("stored session unreadable, clearing")
		if err := p.sessions.Clear(ctx); err != nil {
			p.log.Warn().Err(err).Msg("clear unreadable session failed")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if user != nil && hasToken {
		p.user = user
	}
	p.initialized = true
	delete(p.inflight, opInit)
}

// User returns a copy of the current user or nil.
func (p *Provider) User() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return nil
	}
	u := p.user.Clone()
	return &u
}

func (p *Provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.initialized || len(p.inflight) > 0
}

func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case !p.initialized && !p.inflight[opInit]:
		return StateUninitialized
	case len(p.inflight) > 0:
		return StateLoading
	case p.user != nil:
		return StateAuthenticated
	}
	return StateAnonymous
}

type Snapshot struct {
	User    *models.User `json:"user"`
	Loading bool         `json:"isLoading"`
	State   State        `json:"state"`
}

func (p *Provider) Snapshot() Snapshot {
	return Snapshot{User: p.User(), Loading: p.Loading(), State: p.State()}
}

func (p *Provider) begin(o op) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inflight[o] {
		return ErrBusy
	}
	p.inflight[o] = true
	return nil
}

func (p *Provider) end(o op, user *models.User, set bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if set {
		p.user = user
	}
	delete(p.inflight, o)
}

func (p *Provider) Login(ctx context.Context, email, password string) error {
	if err := p.begin(opLogin); err != nil {
		return err
	}

	res, err := p.backend.Login(ctx, email, password)
	if err == nil {
		err = p.persist(ctx, res)
	}
	if err != nil {
		p.end(opLogin, nil, false)
		p.fail(err)
		return err
	}

	p.end(opLogin, &res.User, true)
	p.notifier.Notify(Notification{Level: LevelSuccess, Message: fmt.Sprintf("Welcome back, %s!", res.User.Name)})
	return nil
}

func (p *Provider) Register(ctx context.Context, reg models.Registration) error {
	if err := p.begin(opRegister); err != nil {
		return err
	}

	res, err := p.backend.Register(ctx, reg)
	if err == nil {
		err = p.persist(ctx, res)
	}
	if err != nil {
		p.end(opRegister, nil, false)
		p.fail(err)
		return err
	}

	p.end(opRegister, &res.User, true)
	p.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Account created successfully! Welcome, %s!", res.User.Name),
	})
	return nil
}

// Logout always ends signed out. A backend failure is logged, not returned.
func (p *Provider) Logout(ctx context.Context) error {
	if err := p.begin(opLogout); err != nil {
		return err
	}

	backendErr := p.backend.Logout(ctx, p.sessions)
	if err := p.sessions.Clear(context.WithoutCancel(ctx)); err != nil {
		p.log.Warn().Err(err).Msg("clear session on logout failed")
	}
	p.end(opLogout, nil, true)

	if backendErr != nil {
		p.log.Error().Err(backendErr).Msg("logout error")
		return nil
	}
	p.notifier.Notify(Notification{Level: LevelSuccess, Message: "Logged out successfully"})
	return nil
}

func (p *Provider) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	current := p.User()
	if current == nil {
		return ErrNotAuthenticated
	}
	if err := p.begin(opUpdateProfile); err != nil {
		return err
	}

	updated, err := p.backend.UpdateProfile(ctx, current.ID, update)
	if err == nil {
		token, _ := p.sessions.Token(ctx)
		if serr := p.sessions.SetSession(ctx, updated, token); serr != nil {
			err = fmt.Errorf("persist session: %w", serr)
		}
	}
	if err != nil {
		p.end(opUpdateProfile, nil, false)
		p.fail(err)
		return err
	}

	p.end(opUpdateProfile, &updated, true)
	p.notifier.Notify(Notification{Level: LevelSuccess, Message: "Profile updated successfully"})
	return nil
}

func (p *Provider) persist(ctx context.Context, res service.AuthResult) error {
	if err := p.sessions.SetSession(ctx, res.User, res.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (p *Provider) fail(err error) {
	p.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
}
