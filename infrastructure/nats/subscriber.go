package nats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"kanban-api/domain/ports"
	"kanban-api/pkg/logger"
)

// MailSubscriber ดึงอีเมลจาก outbox แล้วส่งผ่าน sender จริง (SMTP)
type MailSubscriber struct {
	js         jetstream.JetStream
	sender     ports.MailSender
	maxDeliver int
	consumer   jetstream.Consumer
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	running    bool
}

func NewMailSubscriber(client *Client, sender ports.MailSender, maxDeliver int) *MailSubscriber {
	if maxDeliver <= 0 {
		maxDeliver = 5
	}
	return &MailSubscriber{
		js:         client.js,
		sender:     sender,
		maxDeliver: maxDeliver,
	}
}

// Start สร้าง durable consumer และเริ่ม consume ใน background
func (s *MailSubscriber) Start(ctx context.Context) error {
	if s.running {
		return nil
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, MailStreamName, jetstream.ConsumerConfig{
		Durable:       MailConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckWait:       60 * time.Second,
		MaxDeliver:    s.maxDeliver,
	})
	if err != nil {
		logger.Error("Failed to create mail consumer", "error", err)
		return err
	}
	s.consumer = consumer

	subCtx, cancel := context.WithCancel(context.Background())
	s.cancelFunc = cancel
	s.running = true

	s.wg.Add(1)
	go s.consume(subCtx)

	logger.Info("Mail subscriber started", "max_deliver", s.maxDeliver)
	return nil
}

const (
	fetchRetryBase = time.Second
	fetchRetryMax  = 30 * time.Second
)

// fetchRetryDelay หน่วงเพิ่มเป็นเท่าตัวเมื่อ Fetch ล้มเหลวติดกัน (เช่น connection หลุด, stream หาย)
func fetchRetryDelay(failures int) time.Duration {
	if failures > 5 {
		return fetchRetryMax
	}
	return min(fetchRetryBase<<failures, fetchRetryMax)
}

func (s *MailSubscriber) consume(ctx context.Context) {
	defer s.wg.Done()
	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := s.consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			delay := fetchRetryDelay(failures)
			failures++
			logger.Warn("Mail fetch failed, backing off", "error", err, "retry_in", delay)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			continue
		}

		failures = 0
		for msg := range msgs.Messages() {
			s.handleMessage(ctx, msg)
		}
	}
}

func (s *MailSubscriber) handleMessage(ctx context.Context, msg jetstream.Msg) {
	var envelope MailEnvelope
	if err := json.Unmarshal(msg.Data(), &envelope); err != nil {
		logger.Error("Failed to unmarshal mail envelope", "error", err)
		msg.Term()
		return
	}

	if envelope.RequestID != "" {
		ctx = logger.ContextWithRequestID(ctx, envelope.RequestID)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.sender.Send(sendCtx, &envelope.Message); err != nil {
		attempt := uint64(1)
		if meta, metaErr := msg.Metadata(); metaErr == nil {
			attempt = meta.NumDelivered
		}
		if attempt >= uint64(s.maxDeliver) {
			logger.ErrorContext(ctx, "Mail dropped after max deliveries",
				"kind", envelope.Message.Kind,
				"to", envelope.Message.To,
				"attempts", attempt,
				"error", err,
			)
			msg.Term()
			return
		}
		logger.WarnContext(ctx, "Mail delivery failed, will retry",
			"kind", envelope.Message.Kind,
			"attempt", attempt,
			"error", err,
		)
		msg.NakWithDelay(time.Duration(attempt) * 10 * time.Second)
		return
	}

	msg.Ack()
}

// Stop หยุด consumer และรอ message ที่กำลังส่งอยู่
func (s *MailSubscriber) Stop() {
	if !s.running {
		return
	}
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.wg.Wait()
	s.running = false
	logger.Info("Mail subscriber stopped")
}
