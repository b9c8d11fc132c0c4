package controller

import (
	"os"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/pkg/serverutils"
	"ai-claims-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHackrxController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
}

type hackrxController struct {
	queryService    service.IQueryService
	documentService service.IDocumentService
	bearerToken     string
}

func NewHackrxController(
	queryService service.IQueryService,
	documentService service.IDocumentService,
	bearerToken string,
) IHackrxController {
	return &hackrxController{
		queryService:    queryService,
		documentService: documentService,
		bearerToken:     bearerToken,
	}
}

func (c *hackrxController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/v1/hackrx")
	h.Use(serverutils.BearerAuthMiddleware(c.bearerToken))
	h.Post("/run", c.Run)
}

func (c *hackrxController) Run(ctx *fiber.Ctx) error {
	var req dto.RunRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	docPath, err := c.documentService.DownloadToTemp(ctx.Context(), req.Documents)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer os.Remove(docPath)

	if _, err := c.documentService.IngestFile(ctx.Context(), docPath); err != nil {
		return err
	}

	answers, err := c.queryService.AnswerQuestions(ctx.Context(), req.Questions)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.RunResponse{Answers: answers})
}
