package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide order lifecycle counters, reset on restart.
var (
	CheckoutsStarted     Counter
	CheckoutsFailed      Counter
	PaymentsApproved     Counter
	WebhookNotifications Counter
)

func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"checkouts_started":     CheckoutsStarted.Load(),
		"checkouts_failed":      CheckoutsFailed.Load(),
		"payments_approved":     PaymentsApproved.Load(),
		"webhook_notifications": WebhookNotifications.Load(),
	}
}
