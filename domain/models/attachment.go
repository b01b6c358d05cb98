package models

import "time"

type Attachment struct {
	ID           uint   `gorm:"primaryKey"`
	TaskID       uint   `gorm:"not null;index"`
	FileName     string `gorm:"size:255;not null"` // ชื่อไฟล์ต้นฉบับ
	StoredName   string `gorm:"size:255;not null"` // <uuid><ext>
	ContentType  string `gorm:"size:100;not null"`
	Size         int64  `gorm:"not null"`
	FilePath     string `gorm:"size:500;not null"` // path ภายใน storage
	UploadedByID uint   `gorm:"index"`
	UploadedAt   time.Time
}

func (Attachment) TableName() string {
	return "attachments"
}
