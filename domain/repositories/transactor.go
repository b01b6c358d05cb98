package repositories

import "context"

// Transactor รันหลายคำสั่งใน transaction เดียว
// repository ที่ถูกเรียกด้วย ctx ที่ได้จาก fn จะใช้ transaction นั้นอัตโนมัติ
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
