package ports

import "context"

// QueueStatus สถานะของ mail outbox
type QueueStatus struct {
	StreamName  string `json:"streamName"`
	Pending     uint64 `json:"pending"`
	AckPending  uint64 `json:"ackPending"`
	Redelivered uint64 `json:"redelivered"`
}

// OutboxStatusPort ใช้โดย health check เมื่อส่งอีเมลผ่าน NATS
type OutboxStatusPort interface {
	GetQueueStatus(ctx context.Context) (*QueueStatus, error)
}
