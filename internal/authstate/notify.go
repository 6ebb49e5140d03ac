package authstate

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a toast shown to the user on the next rendered page.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

// Inbox buffers notifications until a page drains them.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
}

func (b *Inbox) Notify(n Notification) {
	b.mu.Lock()
	b.items = append(b.items, n)
	b.mu.Unlock()
}

func (b *Inbox) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.items
	b.items = nil
	return items
}

type discard struct{}

func (discard) Notify(Notification) {}
