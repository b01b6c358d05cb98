package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"kanban-api/domain/ports"
	"kanban-api/pkg/logger"
)

// Client wraps NATS connection with JetStream context
type Client struct {
	conn       *nats.Conn
	js         jetstream.JetStream
	mailStream jetstream.Stream
}

// ClientConfig configuration สำหรับ NATS Client
type ClientConfig struct {
	URL string // nats://localhost:4222
}

// NewClient เชื่อมต่อ NATS และเตรียม stream ของ mail outbox
func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("kanban-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{conn: nc, js: js}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.setupStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", MailStreamName)
	return client, nil
}

// setupStream: work queue ลบ message หลัง ack
func (c *Client) setupStream(ctx context.Context) error {
	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        MailStreamName,
		Subjects:    []string{SubjectMailOutbound},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.WorkQueuePolicy,
		MaxAge:      72 * time.Hour,
		Replicas:    1,
		Description: "Outbound email queue",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update mail stream: %w", err)
	}
	c.mailStream = stream
	return nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// GetQueueStatus ใช้ใน health check
func (c *Client) GetQueueStatus(ctx context.Context) (*ports.QueueStatus, error) {
	info, err := c.mailStream.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream info: %w", err)
	}

	status := &ports.QueueStatus{
		StreamName: info.Config.Name,
		Pending:    info.State.Msgs,
	}

	consumer, err := c.mailStream.Consumer(ctx, MailConsumerName)
	if err == nil {
		if ci, err := consumer.Info(ctx); err == nil {
			status.AckPending = uint64(ci.NumAckPending)
			status.Redelivered = uint64(ci.NumRedelivered)
		}
	}
	return status, nil
}

// Close ปิด NATS connection (drain เพื่อให้ message ที่ค้างถูกส่งก่อน)
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
	logger.Info("NATS connection closed")
	return nil
}

func (c *Client) Ping() error {
	return c.conn.FlushTimeout(5 * time.Second)
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}
