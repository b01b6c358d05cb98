package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kanban-api/domain/ports"
	"kanban-api/pkg/logger"
)

// MailPublisher ส่งอีเมลเข้า outbox แทนการส่ง SMTP ระหว่าง request
type MailPublisher struct {
	client *Client
}

func NewMailPublisher(client *Client) *MailPublisher {
	return &MailPublisher{client: client}
}

func (p *MailPublisher) Name() string { return "nats" }

// Send implements ports.MailSender
func (p *MailPublisher) Send(ctx context.Context, msg *ports.MailMessage) error {
	data, err := json.Marshal(MailEnvelope{
		Message:    *msg,
		RequestID:  logger.GetRequestID(ctx),
		EnqueuedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail: %w", err)
	}

	ack, err := p.client.js.Publish(ctx, SubjectMailOutbound, data)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish mail", "kind", msg.Kind, "error", err)
		return fmt.Errorf("failed to publish mail: %w", err)
	}

	logger.InfoContext(ctx, "Mail queued",
		"kind", msg.Kind,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
