package authstate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"docconnect/internal/session"
)

// Browser is everything kept for one visitor between requests.
type Browser struct {
	ID       string
	Provider *Provider
	Inbox    *Inbox
	Store    *session.Store

	lastSeen time.Time
}

// Registry hands out one Browser per browser id, creating and initializing
// it on first use.
type Registry struct {
	backend Backend
	medium  session.Medium
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	browsers map[string]*Browser
}

func NewRegistry(backend Backend, medium session.Medium, log zerolog.Logger) *Registry {
	return &Registry{
		backend:  backend,
		medium:   medium,
		log:      log,
		now:      time.Now,
		browsers: make(map[string]*Browser),
	}
}

func (r *Registry) Get(ctx context.Context, browserID string) *Browser {
	r.mu.Lock()
	b, ok := r.browsers[browserID]
	if !ok {
		log := r.log.With().Str("browser_id", browserID).Logger()
		store := session.NewStore(r.medium, browserID, log)
		inbox := &Inbox{}
		b = &Browser{
			ID:       browserID,
			Provider: NewProvider(r.backend, store, inbox, log),
			Inbox:    inbox,
			Store:    store,
		}
		r.browsers[browserID] = b
	}
	b.lastSeen = r.now()
	r.mu.Unlock()

	b.Provider.Init(ctx)
	return b
}

// Sweep forgets browsers not seen for longer than idle. Their stored
// sessions stay in the medium and are restored on the next visit.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, b := range r.browsers {
		if b.lastSeen.Before(cutoff) && !b.Provider.Loading() {
			delete(r.browsers, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.browsers)
}
