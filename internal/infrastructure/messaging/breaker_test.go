package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	down := &recordingSender{err: errors.New("connection refused")}
	b := newBreakerSender(down, 3, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Publish(ctx, "k", nil), down.err)
	}
	assert.Equal(t, stateOpen, b.currentState())

	// 熔断期间不再调用Broker
	assert.ErrorIs(t, b.Publish(ctx, "k", nil), ErrBreakerOpen)
	assert.Len(t, down.keys, 3)
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	s := &recordingSender{err: errors.New("connection refused")}
	b := newBreakerSender(s, 1, time.Second, zap.NewNop())
	now := time.Now()
	b.now = func() time.Time { return now }
	ctx := context.Background()

	assert.Error(t, b.Publish(ctx, "k", nil))
	assert.Equal(t, stateOpen, b.currentState())

	// 探测失败,重新熔断
	now = now.Add(2 * time.Second)
	assert.ErrorIs(t, b.Publish(ctx, "k", nil), s.err)
	assert.Equal(t, stateOpen, b.currentState())

	// 探测成功,恢复
	now = now.Add(2 * time.Second)
	s.err = nil
	assert.NoError(t, b.Publish(ctx, "k", nil))
	assert.Equal(t, stateClosed, b.currentState())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	s := &recordingSender{}
	b := newBreakerSender(s, 2, time.Minute, zap.NewNop())
	ctx := context.Background()

	s.err = errors.New("timeout")
	_ = b.Publish(ctx, "k", nil)
	s.err = nil
	assert.NoError(t, b.Publish(ctx, "k", nil))
	s.err = errors.New("timeout")
	_ = b.Publish(ctx, "k", nil)

	assert.Equal(t, stateClosed, b.currentState())
}
