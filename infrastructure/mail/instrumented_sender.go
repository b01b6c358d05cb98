package mail

import (
	"context"

	"kanban-api/domain/ports"
	"kanban-api/pkg/metrics"
)

type instrumentedSender struct {
	next    ports.MailSender
	metrics *metrics.Metrics
}

// WithMetrics นับจำนวนอีเมลที่ส่งสำเร็จ/ล้มเหลวแยกตามประเภท
func WithMetrics(next ports.MailSender, m *metrics.Metrics) ports.MailSender {
	if m == nil {
		return next
	}
	return &instrumentedSender{next: next, metrics: m}
}

func (s *instrumentedSender) Name() string { return s.next.Name() }

func (s *instrumentedSender) Send(ctx context.Context, msg *ports.MailMessage) error {
	if err := s.next.Send(ctx, msg); err != nil {
		s.metrics.MailFailed.WithLabelValues(string(msg.Kind)).Inc()
		return err
	}
	s.metrics.MailSent.WithLabelValues(string(msg.Kind)).Inc()
	return nil
}
