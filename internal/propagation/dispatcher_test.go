package propagation

import (
	"context"
	"errors"
	"testing"
)

type countingMetrics struct {
	dispatched, handled, skipped, failed, dropped int
}

func (c *countingMetrics) EventDispatched() { c.dispatched++ }
func (c *countingMetrics) EventHandled()    { c.handled++ }
func (c *countingMetrics) EventSkipped()    { c.skipped++ }
func (c *countingMetrics) EventFailed()     { c.failed++ }
func (c *countingMetrics) EventDropped()    { c.dropped++ }

func TestDispatchRoutesToRegisteredHandler(t *testing.T) {
	counter := &countingMetrics{}
	d := NewDispatcher(counter)

	var got []ChangeEvent
	d.Register(DomainEmployee, HandlerFunc(func(_ context.Context, event ChangeEvent) error {
		got = append(got, event)
		return nil
	}))

	d.Dispatch(context.Background(), ChangeEvent{Domain: DomainEmployee, Kind: KindCreate})
	if len(got) != 1 {
		t.Fatalf("expected 1 handled event, got %d", len(got))
	}
	if counter.dispatched != 1 || counter.handled != 1 {
		t.Fatalf("expected dispatched=1 handled=1, got %+v", counter)
	}
}

func TestDispatchUnmatchedDomainIsNoOp(t *testing.T) {
	counter := &countingMetrics{}
	d := NewDispatcher(counter)
	d.Register(DomainEmployee, HandlerFunc(func(context.Context, ChangeEvent) error {
		t.Fatal("employee handler must not run for a leave event")
		return nil
	}))

	d.Dispatch(context.Background(), ChangeEvent{Domain: DomainLeave, Kind: KindUpdate})
	if counter.skipped != 1 {
		t.Fatalf("expected skipped=1, got %+v", counter)
	}
	if counter.handled != 0 || counter.failed != 0 {
		t.Fatalf("expected no handled or failed events, got %+v", counter)
	}
}

func TestDispatchAbsorbsHandlerError(t *testing.T) {
	counter := &countingMetrics{}
	d := NewDispatcher(counter)
	d.Register(DomainLearning, HandlerFunc(func(context.Context, ChangeEvent) error {
		return errors.New("boom")
	}))

	d.Dispatch(context.Background(), ChangeEvent{Domain: DomainLearning, Kind: KindUpdate})
	if counter.failed != 1 || counter.handled != 0 {
		t.Fatalf("expected failed=1 handled=0, got %+v", counter)
	}
}

func TestDispatchRecoversHandlerPanic(t *testing.T) {
	counter := &countingMetrics{}
	d := NewDispatcher(counter)
	d.Register(DomainPerformance, HandlerFunc(func(context.Context, ChangeEvent) error {
		panic("handler bug")
	}))

	d.Dispatch(context.Background(), ChangeEvent{Domain: DomainPerformance, Kind: KindUpdate})
	if counter.failed != 1 {
		t.Fatalf("expected panic counted as failed, got %+v", counter)
	}
}

func TestAttachSubscribesEveryRegisteredDomain(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(DomainEmployee, HandlerFunc(func(context.Context, ChangeEvent) error { return nil }))
	d.Register(DomainLeave, HandlerFunc(func(context.Context, ChangeEvent) error { return nil }))

	bus := NewBus(context.Background(), 4, nil)
	defer bus.Close()

	subs := d.Attach(bus)
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
}
