// Package messaging 把领域事件发布到RabbitMQ
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// sender mq.Publisher的发布能力
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 以事件名作为routing key发布到topic Exchange
type EventPublisher struct {
	sender sender
	log    *zap.Logger
}

// Publish 发布事件并记录指标
func (p *EventPublisher) Publish(ctx context.Context, e event.Event) error {
	err := p.sender.Publish(ctx, e.Name, e)
	metrics.IncEventPublished(e.Name, err)
	if err != nil {
		p.log.Warn("领域事件发布失败", zap.String("event", e.Name), zap.Error(err))
	}
	return err
}

// NewEventPublisher wire provider
// mq.enabled=false时返回NopPublisher，不连接RabbitMQ
func NewEventPublisher(cfg *config.Config, log *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("消息队列未启用，领域事件不会发布")
		return event.NopPublisher{}, func() {}, nil
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := pub.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	guarded := newBreakerSender(pub, cfg.MQ.BreakerFailures, cfg.MQ.BreakerCooldown, log)
	return &EventPublisher{sender: guarded, log: log}, cleanup, nil
}
