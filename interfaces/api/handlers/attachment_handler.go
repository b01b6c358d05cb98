package handlers

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"kanban-api/domain/dto"
	"kanban-api/domain/services"
	"kanban-api/pkg/apperror"
	"kanban-api/pkg/logger"
	"kanban-api/pkg/utils"
)

type AttachmentHandler struct {
	attachmentService services.AttachmentService
}

func NewAttachmentHandler(attachmentService services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload POST /api/attachment/upload (multipart: file, taskId)
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := currentUser(c)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "No file provided", "error", err)
		return utils.ServiceErrorResponse(c, apperror.ErrNoFileUploaded)
	}

	taskID, err := parseID(c.FormValue("taskId"), "taskId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	src, err := file.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "error", err)
		return utils.ServiceErrorResponse(c, apperror.Internal(err))
	}
	defer src.Close()

	logger.InfoContext(ctx, "Attachment upload attempt", "user_id", user.ID, "task_id", taskID,
		"filename", file.Filename, "size", file.Size)

	attachment, err := h.attachmentService.Upload(ctx, user.ID, &dto.UploadAttachmentInput{
		TaskID:      taskID,
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Content:     src,
	})
	if err != nil {
		logger.WarnContext(ctx, "Attachment upload rejected", "filename", file.Filename, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Attachment uploaded", "attachment_id", attachment.ID, "task_id", taskID)
	return utils.CreatedResponse(c, attachment)
}

// ListByTask GET /api/attachment/task/:taskId
func (h *AttachmentHandler) ListByTask(c *fiber.Ctx) error {
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	attachments, err := h.attachmentService.ListByTask(c.UserContext(), taskID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, attachments)
}

// Download GET /api/attachment/download-attachment/:id
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	file, err := h.attachmentService.Download(c.UserContext(), id)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))

	size := -1
	if file.Size > 0 {
		size = int(file.Size)
	}
	// fasthttp ปิด reader ให้เองเมื่อส่งเสร็จ
	return c.SendStream(file.Content, size)
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	if err := h.attachmentService.Delete(c.UserContext(), id); err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.MessageResponse(c, "Attachment deleted")
}
