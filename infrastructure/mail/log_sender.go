package mail

import (
	"context"

	"kanban-api/domain/ports"
	"kanban-api/pkg/logger"
)

// LogSender ใช้ตอน development: เขียนอีเมลลง log แทนการส่งจริง
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (LogSender) Name() string { return "log" }

func (LogSender) Send(ctx context.Context, msg *ports.MailMessage) error {
	logger.InfoContext(ctx, "Mail (log driver)",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody,
	)
	return nil
}
