package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	BulkQuery(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService    service.IQueryService
	documentService service.IDocumentService
}

func NewQueryController(queryService service.IQueryService, documentService service.IDocumentService) IQueryController {
	return &queryController{
		queryService:    queryService,
		documentService: documentService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
	r.Post("/bulk_query", c.BulkQuery)
}

func (c *queryController) Query(ctx *fiber.Ctx) error {
	query := ctx.Query("query")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter is required")
	}

	res, err := c.queryService.ProcessQuery(ctx.Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// BulkQuery answers a batch of questions against an ad-hoc document,
// supplied either as a multipart file or by URL. The document is indexed
// for the lifetime of the collection; the temp copy is removed afterwards.
func (c *queryController) BulkQuery(ctx *fiber.Ctx) error {
	questions := c.queryService.ParseQuestions(ctx.FormValue("questions"))
	if len(questions) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "questions are required")
	}

	docPath, cleanup, err := c.resolveDocument(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := c.documentService.IngestFile(ctx.Context(), docPath); err != nil {
		return err
	}

	answers, err := c.queryService.AnswerQuestions(ctx.Context(), questions)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.BulkQueryResponse{Answers: answers})
}

func (c *queryController) resolveDocument(ctx *fiber.Ctx) (string, func(), error) {
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		tmpPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
		if err := ctx.SaveFile(fileHeader, tmpPath); err != nil {
			return "", nil, fmt.Errorf("save upload: %w", err)
		}
		return tmpPath, func() { os.Remove(tmpPath) }, nil
	}

	if documentURL := ctx.FormValue("document_url"); documentURL != "" {
		tmpPath, err := c.documentService.DownloadToTemp(ctx.Context(), documentURL)
		if err != nil {
			return "", nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return tmpPath, func() { os.Remove(tmpPath) }, nil
	}

	return "", nil, fiber.NewError(fiber.StatusBadRequest, "either file or document_url is required")
}
