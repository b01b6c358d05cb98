package ports

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound คืนเมื่อไม่พบไฟล์ใน storage
var ErrObjectNotFound = errors.New("object not found")

// StoragePort เก็บไฟล์แนบ ทำให้เปลี่ยน provider ได้ (local, s3)
// path เป็น relative key เช่น "attachments/<uuid>.pdf"
type StoragePort interface {
	// UploadFile เขียนไฟล์และคืน URL ที่เข้าถึงได้
	UploadFile(ctx context.Context, file io.Reader, size int64, path, contentType string) (string, error)

	// DeleteFile ลบไฟล์ ไม่พบไฟล์ถือว่าสำเร็จ
	DeleteFile(ctx context.Context, path string) error

	// GetFileContent เปิดไฟล์สำหรับอ่าน คืน ErrObjectNotFound ถ้าไม่มี
	GetFileContent(ctx context.Context, path string) (io.ReadCloser, int64, error)

	GetFileURL(path string) string

	// GetProviderName ชื่อ provider (local, s3)
	GetProviderName() string
}
