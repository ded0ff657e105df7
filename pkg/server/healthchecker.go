package server

import (
	"context"
	"time"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// OkHealthChecker reports healthy unconditionally. Used for backends that
// live in process memory.
type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

type timeoutHealthChecker struct {
	next    HealthChecker
	timeout time.Duration
}

// WithTimeout bounds every check of hc. A check that outlives the timeout
// sees a cancelled context.
func WithTimeout(hc HealthChecker, timeout time.Duration) HealthChecker {
	return &timeoutHealthChecker{next: hc, timeout: timeout}
}

func (t *timeoutHealthChecker) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Healthy(ctx)
}
