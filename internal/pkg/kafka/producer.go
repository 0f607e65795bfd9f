package kafka

import (
	"Folio/internal/api/config"
	"Folio/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher 发布领域事件
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

type saramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher 按配置创建发布者，未启用时返回空实现
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enable {
		return NopPublisher{}, nil
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	log.Info("Kafka producer connected", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return NewSaramaPublisher(producer, cfg.Topic), nil
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) Publisher {
	return &saramaPublisher{producer: producer, topic: topic}
}

func (p *saramaPublisher) Publish(ctx context.Context, event *Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if event.TraceID == "" {
		event.TraceID = logger.TraceID(ctx)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(event.Type)},
		},
	}
	if event.PostID > 0 {
		msg.Key = sarama.StringEncoder(strconv.FormatUint(event.PostID, 10))
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send event %s: %w", event.Type, err)
	}
	log.DebugContext(ctx, "event published", "type", event.Type, "partition", partition, "offset", offset)
	return nil
}

func (p *saramaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher 未启用 Kafka 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }

func (NopPublisher) Close() error { return nil }
