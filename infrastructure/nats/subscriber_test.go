package nats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
)

type brokenConsumer struct {
	jetstream.Consumer
	calls atomic.Int32
}

func (b *brokenConsumer) Fetch(int, ...jetstream.FetchOpt) (jetstream.MessageBatch, error) {
	b.calls.Add(1)
	return nil, errors.New("nats: connection closed")
}

func TestFetchRetryDelay(t *testing.T) {
	assert.Equal(t, time.Second, fetchRetryDelay(0))
	assert.Equal(t, 2*time.Second, fetchRetryDelay(1))
	assert.Equal(t, 16*time.Second, fetchRetryDelay(4))
	assert.Equal(t, 30*time.Second, fetchRetryDelay(5))
	assert.Equal(t, 30*time.Second, fetchRetryDelay(100))
}

func TestConsumeBacksOffWhenFetchFails(t *testing.T) {
	consumer := &brokenConsumer{}
	s := &MailSubscriber{consumer: consumer}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	s.wg.Add(1)
	s.consume(ctx)

	// ภายใน 300ms ควร Fetch แค่ครั้งเดียวแล้วรอ และหยุดทันทีเมื่อ ctx ถูกยกเลิก
	assert.Equal(t, int32(1), consumer.calls.Load())
	assert.Less(t, time.Since(start), time.Second)
}
