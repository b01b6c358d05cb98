package postgres

import (
	"context"

	"gorm.io/gorm"

	"kanban-api/domain/repositories"
)

type txKey struct{}

// conn คืน transaction ที่อยู่ใน ctx ถ้ามี ไม่เช่นนั้นใช้ db ปกติ
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// runInTx ใช้ transaction เดิมถ้า ctx มีอยู่แล้ว ไม่เช่นนั้นเปิดใหม่
func runInTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) repositories.Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, t.db, fn)
}
