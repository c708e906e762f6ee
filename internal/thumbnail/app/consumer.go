package app

import (
	"context"
	"encoding/json"
	"time"

	"qna_board_service/internal/thumbnail/domain"
	"qna_board_service/pkg/logger"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// JobProcessor handle one render job
type JobProcessor interface {
	Process(ctx context.Context, job domain.RenderJob) error
}

// Consumer 定義 render 工作的消費者
type Consumer struct {
	rabbitChannel *amqp.Channel
	processor     JobProcessor
	queueName     string
	retryDelay    time.Duration
}

// NewConsumer 建構 Consumer 實例
func NewConsumer(rabbitChannel *amqp.Channel, processor JobProcessor, queueName string, retryDelay time.Duration) *Consumer {
	return &Consumer{
		rabbitChannel: rabbitChannel,
		processor:     processor,
		queueName:     queueName,
		retryDelay:    retryDelay,
	}
}

// StartConsumer 開始消費訊息, ctx 結束或 channel 關閉時返回
func (c *Consumer) StartConsumer(ctx context.Context) error {
	// 一次只拿一個 job, render 很慢
	if err := c.rabbitChannel.Qos(1, 0, false); err != nil {
		return errors.Wrap(err, "set qos")
	}

	msgs, err := c.rabbitChannel.Consume(
		c.queueName, // queue
		"",          // consumer tag
		false,       // autoAck, 手動確認
		false,       // exclusive
		false,       // noLocal
		false,       // noWait
		nil,         // arguments
	)
	if err != nil {
		return errors.Wrap(err, "consume render queue")
	}

	logger.Log.Info("consumer started", zap.String("queue", c.queueName))
	return c.run(ctx, msgs)
}

func (c *Consumer) run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("render queue channel closed")
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		case <-ctx.Done():
			logger.Log.Info("consumer stopped")
			return nil
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var job domain.RenderJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		// 格式錯誤的訊息不 requeue
		logger.Log.Error("decode render job failed", zap.Error(err))
		if err := d.Nack(false, false); err != nil {
			logger.Log.Error("nack failed", zap.Error(err))
		}
		return
	}

	if err := c.processor.Process(ctx, job); err != nil {
		logger.Log.Error("render job failed", zap.String("card_url", job.CardURL), zap.Error(err))
		if c.retryDelay > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
			}
		}
		// 已 redelivered 過的直接丟棄
		if err := d.Nack(false, !d.Redelivered); err != nil {
			logger.Log.Error("nack failed", zap.Error(err))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.Log.Error("ack failed", zap.Error(err))
		return
	}
	logger.Log.Info("render job done", zap.String("key", job.ObjectKey))
}
