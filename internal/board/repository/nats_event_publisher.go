package repository

import (
	"context"
	"encoding/json"

	"qna_board_service/internal/board/domain"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// NatsConn subset of *nats.Conn used here
type NatsConn interface {
	PublishMsg(m *nats.Msg) error
	Drain() error
}

type natsEventPublisher struct {
	conn    NatsConn
	subject string
}

// NewNatsEventPublisher publish to <subject>.<event type>
func NewNatsEventPublisher(conn NatsConn, subject string) EventPublisher {
	return &natsEventPublisher{conn: conn, subject: subject}
}

func (p *natsEventPublisher) Publish(ctx context.Context, e domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	msg := nats.NewMsg(p.subject + "." + string(e.Type))
	msg.Header.Set("member_id", e.MemberID)
	msg.Data = data
	return errors.Wrap(p.conn.PublishMsg(msg), "publish event")
}

func (p *natsEventPublisher) Close() error {
	return p.conn.Drain()
}
