package mail

import (
	"context"
	"sync"

	"kanban-api/domain/ports"
)

// RecordingSender เก็บอีเมลที่ส่งไว้ในหน่วยความจำ ใช้ใน test
type RecordingSender struct {
	mu       sync.Mutex
	messages []ports.MailMessage
	Err      error // ถ้าไม่ nil ทุกการส่งจะ fail ด้วย error นี้
}

func NewRecordingSender() *RecordingSender { return &RecordingSender{} }

func (r *RecordingSender) Name() string { return "recording" }

func (r *RecordingSender) Send(ctx context.Context, msg *ports.MailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *RecordingSender) Messages() []ports.MailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.MailMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last คืนอีเมลล่าสุดของประเภท kind
func (r *RecordingSender) Last(kind ports.MailKind) (ports.MailMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].Kind == kind {
			return r.messages[i], true
		}
	}
	return ports.MailMessage{}, false
}
