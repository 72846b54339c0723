package notify

import (
	"fmt"
	"sync"
	"time"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(Notification)

// Bus is a synchronous in-process notification bus. It dispatches
// notifications to subscribers inline, so it is safe to publish from the
// Bubble Tea Update loop.
type Bus struct {
	subscribers []Subscriber
	mu          sync.Mutex
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers.
func (b *Bus) Publish(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Notification{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(Notification{Level: LevelWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(Notification{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}
