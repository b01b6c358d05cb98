package dto

import (
	"io"
	"time"
)

// UploadAttachmentInput คือไฟล์ที่ handler อ่านมาจาก multipart form
type UploadAttachmentInput struct {
	TaskID      uint
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type AttachmentResponse struct {
	ID         uint      `json:"id"`
	TaskID     uint      `json:"taskId"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	Size       int64     `json:"size"`
	FilePath   string    `json:"filePath"`
	URL        string    `json:"url,omitempty"`
	UploadedBy uint      `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AttachmentDownload คือไฟล์ที่พร้อม stream ให้ client
type AttachmentDownload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}
