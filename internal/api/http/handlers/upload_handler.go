package handlers

import (
	"context"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/upload"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// AttachmentCreator persists attachment records.
type AttachmentCreator interface {
	Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error)
}

// UploadHandler stores ticket images and records them as attachments.
type UploadHandler struct {
	store       *upload.Store
	attachments AttachmentCreator
	logger      *zap.Logger
}

// NewUploadHandler constructs handler.
func NewUploadHandler(store *upload.Store, attachments AttachmentCreator, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{store: store, attachments: attachments, logger: logger}
}

// Upload POST /attachments/upload. Multipart fields: file, code, title and optional ticketId.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("no file uploaded", map[string]any{"file": "required"})
	}
	code := strings.TrimSpace(c.FormValue("code"))
	title := strings.TrimSpace(c.FormValue("title"))
	details := map[string]any{}
	if code == "" {
		details["code"] = "required"
	}
	if title == "" {
		details["title"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid upload", details)
	}

	meta := upload.File{
		Code:        code,
		Title:       title,
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
	}
	if err := h.store.Check(meta); err != nil {
		return err
	}

	src, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer src.Close()

	saved, err := h.store.Save(meta, src)
	if err != nil {
		return err
	}

	attachment := &domain.Attachment{URL: saved.URL, Type: domain.AttachmentTypeImage}
	if ticketID := strings.TrimSpace(c.FormValue("ticketId")); ticketID != "" {
		attachment.TicketID = &ticketID
	}
	created, err := h.attachments.Create(requestContext(c), attachment)
	if err != nil {
		if rmErr := os.Remove(saved.Path); rmErr != nil {
			h.logger.Warn("remove orphaned upload", zap.String("path", saved.Path), zap.Error(rmErr))
		}
		return err
	}

	h.logger.Info("file uploaded", zap.String("filename", saved.Filename), zap.Int64("size", saved.Size))
	return c.Status(fiber.StatusCreated).JSON(created)
}
