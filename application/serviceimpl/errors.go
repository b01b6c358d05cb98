package serviceimpl

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kanban-api/domain/ports"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
)

// repoError แปลง error จาก repository เป็น apperror
func repoError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(entity)
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}

// removeFiles ลบไฟล์แนบหลังจากลบ row แล้ว
// ลบไม่ได้บางไฟล์ -> ErrPartialFailure (ข้อมูลใน DB ถูกลบไปแล้ว)
func removeFiles(ctx context.Context, storage ports.StoragePort, paths []string) error {
	var failed int
	var lastErr error
	for _, p := range paths {
		if err := storage.DeleteFile(ctx, p); err != nil {
			logger.WarnContext(ctx, "Failed to delete attachment file", "path", p, "error", err)
			failed++
			lastErr = err
		}
	}
	if failed > 0 {
		return apperror.ErrPartialFailure.
			WithMessage("records deleted but some attachment files could not be removed").
			Wrap(lastErr)
	}
	return nil
}
