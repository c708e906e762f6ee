package database

import (
	"fmt"
	"strings"
	"time"

	"qna_board_service/pkg/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NatsConnection definition nats
type NatsConnection struct {
	Servers       []string
	Name          string
	RetryCount    int
	RetryInterval time.Duration
}

// NewNatsConnWithRetry connect nats, 連上後由 client 自動重連
func NewNatsConnWithRetry(n NatsConnection) (*nats.Conn, error) {
	if len(n.Servers) == 0 {
		return nil, fmt.Errorf("nats servers missing")
	}
	opts := []nats.Option{
		nats.Name(n.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(500 * time.Millisecond),
		nats.ReconnectJitter(100*time.Millisecond, 500*time.Millisecond),
		nats.Timeout(3 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Log.Warn("nats disconnected", zap.Error(err))
		}),
	}

	var err error
	for attempt := 1; attempt <= n.RetryCount; attempt++ {
		var nc *nats.Conn
		nc, err = nats.Connect(strings.Join(n.Servers, ","), opts...)
		if err == nil {
			logger.Log.Info("NATS connected", zap.Strings("servers", n.Servers), zap.Int("attempt", attempt))
			return nc, nil
		}

		logger.Log.Warn("NATS connect failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(n.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("connect NATS after %d attempts: %w", n.RetryCount, err)
}
