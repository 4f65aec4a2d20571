package propagation

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBusDeliversInPublishOrder(t *testing.T) {
	bus := NewBus(context.Background(), 16, nil)
	defer bus.Close()

	var mu sync.Mutex
	var got []Kind
	done := make(chan struct{})
	bus.Subscribe(DomainEmployee, func(_ context.Context, event ChangeEvent) {
		mu.Lock()
		got = append(got, event.Kind)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})

	bus.Publish(ChangeEvent{Domain: DomainEmployee, Kind: KindCreate})
	bus.Publish(ChangeEvent{Domain: DomainEmployee, Kind: KindUpdate})
	bus.Publish(ChangeEvent{Domain: DomainEmployee, Kind: KindDelete})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	mu.Lock()
	defer mu.Unlock()
	want := []Kind{KindCreate, KindUpdate, KindDelete}
	for i, kind := range want {
		if got[i] != kind {
			t.Fatalf("event %d: expected %s, got %s", i, kind, got[i])
		}
	}
}

func TestBusIgnoresOtherDomains(t *testing.T) {
	bus := NewBus(context.Background(), 4, nil)
	defer bus.Close()

	delivered := make(chan ChangeEvent, 4)
	bus.Subscribe(DomainLeave, func(_ context.Context, event ChangeEvent) {
		delivered <- event
	})

	bus.Publish(ChangeEvent{Domain: DomainEmployee, Kind: KindCreate})
	bus.Publish(ChangeEvent{Domain: DomainLeave, Kind: KindUpdate})

	select {
	case event := <-delivered:
		if event.Domain != DomainLeave {
			t.Fatalf("expected leave event, got %s", event.Domain)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	select {
	case event := <-delivered:
		t.Fatalf("unexpected extra delivery: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusDropsWhenQueueFull(t *testing.T) {
	counter := &countingMetrics{}
	bus := NewBus(context.Background(), 1, counter)
	defer bus.Close()

	block := make(chan struct{})
	started := make(chan struct{})
	bus.Subscribe(DomainLearning, func(context.Context, ChangeEvent) {
		close(started)
		<-block
	})

	// First event occupies the handler, second fills the queue.
	bus.Publish(ChangeEvent{Domain: DomainLearning, Kind: KindUpdate})
	<-started
	bus.Publish(ChangeEvent{Domain: DomainLearning, Kind: KindUpdate})
	bus.Publish(ChangeEvent{Domain: DomainLearning, Kind: KindUpdate})

	if counter.dropped != 1 {
		t.Fatalf("expected 1 dropped event, got %d", counter.dropped)
	}
	close(block)
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	bus := NewBus(context.Background(), 4, nil)
	defer bus.Close()

	delivered := make(chan struct{}, 4)
	sub := bus.Subscribe(DomainPerformance, func(context.Context, ChangeEvent) {
		delivered <- struct{}{}
	})
	sub.Close()

	bus.Publish(ChangeEvent{Domain: DomainPerformance, Kind: KindUpdate})
	select {
	case <-delivered:
		t.Fatal("closed subscription must not deliver")
	case <-time.After(50 * time.Millisecond):
	}
}
