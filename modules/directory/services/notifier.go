package services

import "sync"

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is one dismissible toast. Transient failures and per-field
// validation messages both travel this way; nothing in the console is fatal.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

// CollectingNotifier buffers notifications until the presentation layer
// drains them into a response.
type CollectingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func NewCollectingNotifier() *CollectingNotifier {
	return &CollectingNotifier{}
}

func (c *CollectingNotifier) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *CollectingNotifier) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = nil
	return items
}
