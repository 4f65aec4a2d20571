package propagation

import (
	"context"
	"log/slog"
	"sync"
)

// Feed is the change-notification source the dispatcher consumes. Events
// published for a domain reach every subscription for that domain in publish
// order; ordering across domains is unspecified.
type Feed interface {
	Subscribe(domain Domain, fn func(context.Context, ChangeEvent)) *Subscription
	Publish(event ChangeEvent)
}

// DropCounter is notified when a full subscription queue forces a publish
// to be discarded.
type DropCounter interface {
	EventDropped()
}

// Subscription is one consumer of a single domain's change stream. Events
// are delivered one at a time by a dedicated goroutine, so a handler always
// finishes an event before seeing the next one from the same stream.
type Subscription struct {
	domain Domain
	queue  chan ChangeEvent
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Close stops delivery. Queued events that have not been handed to the
// callback yet are discarded.
func (s *Subscription) Close() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// Bus is an in-process Feed. Publishing never blocks the caller: if a
// subscriber's queue is full the event is dropped and logged.
type Bus struct {
	mu       sync.RWMutex
	subs     map[Domain][]*Subscription
	queueLen int
	ctx      context.Context
	drops    DropCounter
	closed   bool
}

func NewBus(ctx context.Context, queueLen int, drops DropCounter) *Bus {
	if queueLen <= 0 {
		queueLen = 128
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{
		subs:     map[Domain][]*Subscription{},
		queueLen: queueLen,
		ctx:      ctx,
		drops:    drops,
	}
}

func (b *Bus) Subscribe(domain Domain, fn func(context.Context, ChangeEvent)) *Subscription {
	sub := &Subscription{
		domain: domain,
		queue:  make(chan ChangeEvent, b.queueLen),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.done)
		return sub
	}
	b.subs[domain] = append(b.subs[domain], sub)
	b.mu.Unlock()

	go sub.deliver(b.ctx, fn)
	return sub
}

func (b *Bus) Publish(event ChangeEvent) {
	b.mu.RLock()
	subs := b.subs[event.Domain]
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.queue <- event:
		case <-sub.stop:
		default:
			slog.Warn("change feed queue full, event dropped",
				"sourceDomain", event.Domain,
				"changeKind", event.Kind,
			)
			if b.drops != nil {
				b.drops.EventDropped()
			}
		}
	}
}

// Close stops every subscription and rejects future subscribers.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	all := make([]*Subscription, 0)
	for _, subs := range b.subs {
		all = append(all, subs...)
	}
	b.subs = map[Domain][]*Subscription{}
	b.mu.Unlock()

	for _, sub := range all {
		sub.Close()
	}
}

func (s *Subscription) deliver(ctx context.Context, fn func(context.Context, ChangeEvent)) {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case event := <-s.queue:
			fn(ctx, event)
		}
	}
}
