package ports

import "context"

// MailKind ใช้แยกประเภทอีเมลใน log และ metrics
type MailKind string

const (
	MailVerification  MailKind = "verification"
	MailPasswordReset MailKind = "password_reset"
	MailInvitation    MailKind = "invitation"
	MailAssignment    MailKind = "assignment"
)

// MailMessage เป็น plain struct ส่งต่อผ่าน NATS ได้โดยไม่ต้องแปลง
type MailMessage struct {
	Kind     MailKind `json:"kind"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"htmlBody"`
	TextBody string   `json:"textBody"`
}

// MailSender ส่งอีเมลออกไป (smtp, nats outbox, log)
type MailSender interface {
	Send(ctx context.Context, msg *MailMessage) error
	Name() string
}
