package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	eventsDispatched uint64
	eventsHandled    uint64
	eventsSkipped    uint64
	eventsFailed     uint64
	eventsDropped    uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) EventDispatched() { atomic.AddUint64(&c.eventsDispatched, 1) }
func (c *Collector) EventHandled()    { atomic.AddUint64(&c.eventsHandled, 1) }
func (c *Collector) EventSkipped()    { atomic.AddUint64(&c.eventsSkipped, 1) }
func (c *Collector) EventFailed()     { atomic.AddUint64(&c.eventsFailed, 1) }
func (c *Collector) EventDropped()    { atomic.AddUint64(&c.eventsDropped, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"rateLimitedTotal":       limited,
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"eventsDispatchedTotal":  atomic.LoadUint64(&c.eventsDispatched),
		"eventsHandledTotal":     atomic.LoadUint64(&c.eventsHandled),
		"eventsSkippedTotal":     atomic.LoadUint64(&c.eventsSkipped),
		"eventsFailedTotal":      atomic.LoadUint64(&c.eventsFailed),
		"eventsDroppedTotal":     atomic.LoadUint64(&c.eventsDropped),
	}
}
