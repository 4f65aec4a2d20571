package propagation

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler applies one source domain's derived writes for a single change
// event. Returning an error marks the event failed; the error is logged by
// the dispatcher and goes no further.
type Handler interface {
	Handle(ctx context.Context, event ChangeEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event ChangeEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event ChangeEvent) error {
	return f(ctx, event)
}

// EventCounter receives dispatcher outcome counts.
type EventCounter interface {
	EventDispatched()
	EventHandled()
	EventSkipped()
	EventFailed()
}

// Dispatcher routes change events to the handler registered for their
// source domain. Handler failures and panics are absorbed here: the caller
// of Dispatch never sees them.
type Dispatcher struct {
	handlers map[Domain]Handler
	counter  EventCounter
}

func NewDispatcher(counter EventCounter) *Dispatcher {
	return &Dispatcher{
		handlers: map[Domain]Handler{},
		counter:  counter,
	}
}

func (d *Dispatcher) Register(domain Domain, handler Handler) {
	d.handlers[domain] = handler
}

// Dispatch routes one event. Unknown domains are a logged no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, event ChangeEvent) {
	if d.counter != nil {
		d.counter.EventDispatched()
	}

	handler, ok := d.handlers[event.Domain]
	if !ok {
		slog.Info("no propagation handler for source domain",
			"sourceDomain", event.Domain,
			"changeKind", event.Kind,
		)
		if d.counter != nil {
			d.counter.EventSkipped()
		}
		return
	}

	if err := d.safeHandle(ctx, handler, event); err != nil {
		slog.Warn("propagation handler failed",
			"sourceDomain", event.Domain,
			"changeKind", event.Kind,
			"err", err,
		)
		if d.counter != nil {
			d.counter.EventFailed()
		}
		return
	}
	if d.counter != nil {
		d.counter.EventHandled()
	}
}

// Attach subscribes the dispatcher to every registered domain on the feed.
// The returned subscriptions should be closed on shutdown.
func (d *Dispatcher) Attach(feed Feed) []*Subscription {
	subs := make([]*Subscription, 0, len(d.handlers))
	for domain := range d.handlers {
		subs = append(subs, feed.Subscribe(domain, d.Dispatch))
	}
	return subs
}

func (d *Dispatcher) safeHandle(ctx context.Context, handler Handler, event ChangeEvent) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return handler.Handle(ctx, event)
}
