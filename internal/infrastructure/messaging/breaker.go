package messaging

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrBreakerOpen 熔断期间直接拒绝发布
var ErrBreakerOpen = errors.New("event broker circuit open")

type breakerState int

const (
	stateClosed   breakerState = iota // 正常发布,统计连续失败
	stateOpen                         // 快速失败,直到冷却结束
	stateHalfOpen                     // 放行一次探测
)

func (s breakerState) String() string {
	switch s {
	case stateClosed:
		return "CLOSED"
	case stateOpen:
		return "OPEN"
	case stateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// breakerSender 在Broker不可用时熔断
// RabbitMQ宕机后请求不再逐个等待发布超时,冷却结束后由一次探测决定是否恢复
type breakerSender struct {
	next      sender
	threshold int
	cooldown  time.Duration
	log       *zap.Logger

	mu       sync.Mutex
	state    breakerState
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

func newBreakerSender(next sender, threshold int, cooldown time.Duration, log *zap.Logger) *breakerSender {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &breakerSender{
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		log:       log,
		now:       time.Now,
	}
}

func (b *breakerSender) Publish(ctx context.Context, routingKey string, message interface{}) error {
	if !b.allow() {
		return ErrBreakerOpen
	}
	err := b.next.Publish(ctx, routingKey, message)
	b.record(err == nil)
	return err
}

func (b *breakerSender) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return false
		}
		b.setState(stateHalfOpen)
		b.probing = true
		return true
	case stateHalfOpen:
		// 同一时间只允许一个探测
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return true
	}
}

func (b *breakerSender) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok {
		b.failures = 0
		b.probing = false
		if b.state != stateClosed {
			b.setState(stateClosed)
		}
		return
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.threshold {
		b.probing = false
		b.openedAt = b.now()
		b.setState(stateOpen)
	}
}

func (b *breakerSender) setState(s breakerState) {
	if b.state == s {
		return
	}
	b.log.Warn("事件发布熔断器状态变化",
		zap.String("from", b.state.String()),
		zap.String("to", s.String()),
		zap.Int("failures", b.failures),
	)
	b.state = s
}

func (b *breakerSender) currentState() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
