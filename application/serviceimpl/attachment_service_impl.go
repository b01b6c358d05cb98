package serviceimpl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"kanban-api/domain/dto"
	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/repositories"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

const (
	MaxAttachmentSize = 10 * 1024 * 1024
	attachmentDir     = "attachments"
	sniffLen          = 3072
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// allowedAttachmentTypes นามสกุลที่อัปโหลดได้ และ Content-Type ที่ยอมรับของแต่ละนามสกุล
var allowedAttachmentTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".xlsx": {mimeXLSX},
	".docx": {mimeDOCX},
}

type AttachmentServiceImpl struct {
	taskRepo       repositories.TaskRepository
	attachmentRepo repositories.AttachmentRepository
	storage        ports.StoragePort
	now            func() time.Time
}

func NewAttachmentService(
	taskRepo repositories.TaskRepository,
	attachmentRepo repositories.AttachmentRepository,
	storage ports.StoragePort,
) services.AttachmentService {
	return &AttachmentServiceImpl{
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		now:            time.Now,
	}
}

func (s *AttachmentServiceImpl) Upload(ctx context.Context, uploaderID uint, in *dto.UploadAttachmentInput) (*dto.AttachmentResponse, error) {
	if in == nil || in.Content == nil || in.Size == 0 {
		return nil, apperror.ErrNoFileUploaded
	}

	ext := strings.ToLower(filepath.Ext(in.FileName))
	allowed, ok := allowedAttachmentTypes[ext]
	if !ok {
		return nil, apperror.ErrUnsupportedExtension
	}

	if in.Size > MaxAttachmentSize {
		return nil, apperror.ErrFileTooLarge
	}

	declared, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil || !containsFold(allowed, declared) {
		return nil, apperror.ErrInvalidMimeType
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Internal(err)
	}
	head = head[:n]
	if n == 0 {
		return nil, apperror.ErrNoFileUploaded
	}
	if !sniffMatches(mimetype.Detect(head), declared) {
		logger.WarnContext(ctx, "Attachment content does not match its type",
			"file_name", in.FileName, "declared", declared, "detected", mimetype.Detect(head).String())
		return nil, apperror.ErrInvalidMimeType
	}

	if _, err := s.taskRepo.GetByID(ctx, in.TaskID); err != nil {
		return nil, repoError(err, "task")
	}

	storedName := uuid.NewString() + ext
	filePath := path.Join(attachmentDir, storedName)
	body := &countingReader{r: io.LimitReader(io.MultiReader(bytes.NewReader(head), in.Content), MaxAttachmentSize+1)}

	if _, err := s.storage.UploadFile(ctx, body, in.Size, filePath, declared); err != nil {
		logger.ErrorContext(ctx, "Failed to store attachment", "path", filePath, "error", err)
		return nil, apperror.Internal(err)
	}
	if body.n > MaxAttachmentSize {
		s.discard(ctx, filePath)
		return nil, apperror.ErrFileTooLarge
	}

	attachment := &models.Attachment{
		TaskID:       in.TaskID,
		FileName:     utils.SanitizeFileName(in.FileName),
		StoredName:   storedName,
		ContentType:  declared,
		Size:         body.n,
		FilePath:     filePath,
		UploadedByID: uploaderID,
		UploadedAt:   s.now().UTC(),
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// row ไม่ถูกสร้าง ไฟล์ต้องไม่ค้าง
		s.discard(ctx, filePath)
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "Attachment uploaded",
		"attachment_id", attachment.ID,
		"task_id", attachment.TaskID,
		"size", attachment.Size,
		"provider", s.storage.GetProviderName(),
	)
	return s.toResponse(attachment), nil
}

func (s *AttachmentServiceImpl) discard(ctx context.Context, filePath string) {
	if err := s.storage.DeleteFile(ctx, filePath); err != nil {
		logger.WarnContext(ctx, "Failed to remove orphan attachment file", "path", filePath, "error", err)
	}
}

func (s *AttachmentServiceImpl) toResponse(a *models.Attachment) *dto.AttachmentResponse {
	resp := dto.AttachmentToAttachmentResponse(a)
	resp.URL = s.storage.GetFileURL(a.FilePath)
	return resp
}

func (s *AttachmentServiceImpl) ListByTask(ctx context.Context, taskID uint) ([]*dto.AttachmentResponse, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, repoError(err, "task")
	}
	attachments, err := s.attachmentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		out = append(out, s.toResponse(a))
	}
	return out, nil
}

func (s *AttachmentServiceImpl) Download(ctx context.Context, id uint) (*dto.AttachmentDownload, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "attachment")
	}

	content, size, err := s.storage.GetFileContent(ctx, attachment.FilePath)
	if err != nil {
		if errors.Is(err, ports.ErrObjectNotFound) {
			return nil, apperror.NotFound("attachment file")
		}
		return nil, apperror.Internal(err)
	}

	return &dto.AttachmentDownload{
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		Size:        size,
		Content:     content,
	}, nil
}

// Delete ลบไฟล์ก่อน ลบไฟล์ไม่ได้ก็ยังลบ row แล้วคืน ErrPartialFailure
func (s *AttachmentServiceImpl) Delete(ctx context.Context, id uint) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "attachment")
	}

	fileErr := s.storage.DeleteFile(ctx, attachment.FilePath)
	if fileErr != nil {
		logger.WarnContext(ctx, "Failed to delete attachment file", "attachment_id", id, "path", attachment.FilePath, "error", fileErr)
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return repoError(err, "attachment")
	}

	if fileErr != nil {
		return apperror.ErrPartialFailure.
			WithMessage("attachment record deleted but the file could not be removed").
			Wrap(fileErr)
	}

	logger.InfoContext(ctx, "Attachment deleted", "attachment_id", id)
	return nil
}

// sniffMatches ไฟล์ OOXML อาจถูกตรวจเป็น zip ถ้า entry ที่บอกชนิดอยู่เกินช่วงที่อ่าน
func sniffMatches(detected *mimetype.MIME, declared string) bool {
	if detected.Is(declared) {
		return true
	}
	if declared == mimeXLSX || declared == mimeDOCX {
		for m := detected; m != nil; m = m.Parent() {
			if m.Is("application/zip") {
				return true
			}
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
