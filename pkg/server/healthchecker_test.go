package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type blockingChecker struct{}

func (blockingChecker) Healthy(ctx context.Context) bool {
	<-ctx.Done()
	return false
}

func TestOkHealthChecker(t *testing.T) {
	assert.True(t, NewOkHealthChecker().Healthy(context.Background()))
}

func TestWithTimeout(t *testing.T) {
	start := time.Now()
	hc := WithTimeout(blockingChecker{}, 20*time.Millisecond)

	assert.False(t, hc.Healthy(context.Background()))
	assert.Less(t, time.Since(start), time.Second)

	assert.True(t, WithTimeout(NewOkHealthChecker(), time.Second).Healthy(context.Background()))
}
