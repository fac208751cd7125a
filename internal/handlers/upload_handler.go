package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
	log            *zap.Logger
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No valid file uploaded. Please upload 'resume' as a PDF or DOCX file.")
	}

	if file.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File size exceeds %s limit.", formatSize(h.maxFileSize)))
	}

	kind, ok := services.DocumentKindFromFilename(file.Filename)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type. Please upload PDF or DOCX.")
	}

	filename, filePath, err := h.storageService.SaveFile(file, "resume")
	if err != nil {
		return withStage(c, "upload", fmt.Errorf("failed to save resume file: %w", err))
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Kind:             string(kind),
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// the row is the only reference to the file
		if delErr := h.storageService.DeleteFile(filename); delErr != nil {
			h.log.Warn("⚠️ Failed to clean up upload", zap.String("file", filename), zap.Error(delErr))
		}
		return withStage(c, "upload", fmt.Errorf("failed to save document record: %w", err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"document": models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Kind:         doc.Kind,
		},
	})
}
