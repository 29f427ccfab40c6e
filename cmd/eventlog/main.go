// eventlog 订阅目录领域事件并写入日志,用于排查和审计
package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, syncLog, err := logger.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer syncLog()

	if !cfg.MQ.Enabled {
		zlog.Fatal("消息队列未启用(mq.enabled=false)")
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, []string{"catalog.#"}, zlog)
	if err != nil {
		zlog.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Info("开始消费领域事件", zap.String("queue", cfg.MQ.Queue))
	if err := consumer.Consume(ctx, func(_ context.Context, d mq.Delivery) error {
		return logEvent(zlog, d)
	}); err != nil {
		zlog.Error("消费中断", zap.Error(err))
	}
}

// logEvent 无法解析的消息直接丢弃,避免反复重新入队
func logEvent(zlog *zap.Logger, d mq.Delivery) error {
	var e struct {
		event.Event
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(d.Body, &e); err != nil {
		zlog.Warn("无法解析的事件", zap.String("routing_key", d.RoutingKey), zap.Error(err))
		return nil
	}
	zlog.Info("领域事件",
		zap.String("event", e.Name),
		zap.Time("occurred_at", e.OccurredAt),
		zap.ByteString("payload", e.Payload),
	)
	return nil
}
