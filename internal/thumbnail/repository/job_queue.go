package repository

import (
	"context"
	"encoding/json"

	"qna_board_service/internal/thumbnail/domain"
	"qna_board_service/pkg/database"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// JobQueue enqueue render jobs
type JobQueue interface {
	Enqueue(ctx context.Context, job domain.RenderJob) error
}

type rabbitJobQueue struct {
	rabbit    database.RabbitRepo
	queueName string
}

// NewRabbitJobQueue publish jobs to queueName on the default exchange
func NewRabbitJobQueue(rabbit database.RabbitRepo, queueName string) JobQueue {
	return &rabbitJobQueue{rabbit: rabbit, queueName: queueName}
}

func (q *rabbitJobQueue) Enqueue(_ context.Context, job domain.RenderJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "marshal render job")
	}
	err = q.rabbit.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	return errors.Wrap(err, "publish render job")
}
