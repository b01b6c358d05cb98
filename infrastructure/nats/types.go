package nats

import "kanban-api/domain/ports"

// Stream, consumer และ subject ของ mail outbox
const (
	MailStreamName      = "MAIL"
	MailConsumerName    = "MAILER"
	SubjectMailOutbound = "mail.outbound"
)

// MailEnvelope คือ payload ที่วิ่งผ่าน JetStream
type MailEnvelope struct {
	Message    ports.MailMessage `json:"message"`
	RequestID  string            `json:"request_id,omitempty"`
	EnqueuedAt int64             `json:"enqueued_at"`
}
