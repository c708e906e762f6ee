package repository

import (
	"context"
	"encoding/json"

	"qna_board_service/internal/board/domain"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// EventPublisher publish ledger activity after commit
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
	Close() error
}

// KafkaWriter subset of *kafka.Writer used here
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaEventPublisher struct {
	writer KafkaWriter
}

// NewKafkaEventPublisher create EventPublisher over writer, key 為 member id 以保持同一頁面的順序
func NewKafkaEventPublisher(writer KafkaWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, e domain.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.MemberID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
	return errors.Wrap(err, "write event")
}

func (p *kafkaEventPublisher) Close() error {
	return p.writer.Close()
}

type nopEventPublisher struct{}

// NewNopEventPublisher publisher used when kafka is disabled
func NewNopEventPublisher() EventPublisher {
	return nopEventPublisher{}
}

func (nopEventPublisher) Publish(context.Context, domain.Event) error { return nil }

func (nopEventPublisher) Close() error { return nil }
