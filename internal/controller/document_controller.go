package controller

import (
	"fmt"
	"path/filepath"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	destPath := filepath.Join(c.uploadDir, filepath.Base(fileHeader.Filename))
	if err := ctx.SaveFile(fileHeader, destPath); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}

	chunks, err := c.documentService.IngestFile(ctx.Context(), destPath)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.UploadResponse{
		Message: "Uploaded and processed successfully",
		Chunks:  chunks,
	})
}
