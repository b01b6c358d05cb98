package services

import (
	"context"

	"kanban-api/domain/dto"
)

type AttachmentService interface {
	Upload(ctx context.Context, uploaderID uint, in *dto.UploadAttachmentInput) (*dto.AttachmentResponse, error)
	ListByTask(ctx context.Context, taskID uint) ([]*dto.AttachmentResponse, error)
	// Download คืน stream ของไฟล์ ผู้เรียกต้อง Close
	Download(ctx context.Context, id uint) (*dto.AttachmentDownload, error)
	// Delete ลบไฟล์ก่อนแล้วค่อยลบ row คืน ErrPartialFailure ถ้าลบไฟล์ไม่สำเร็จ
	Delete(ctx context.Context, id uint) error
}
