package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubQueryService struct {
	answers []string
}

func (s *stubQueryService) ProcessQuery(ctx context.Context, query string) (*dto.QueryResponse, error) {
	return &dto.QueryResponse{
		ParsedQuery:    map[string]interface{}{"raw_query": query},
		DecisionResult: map[string]interface{}{"decision": "approved"},
	}, nil
}

func (s *stubQueryService) AnswerQuestions(ctx context.Context, questions []string) ([]string, error) {
	return s.answers[:len(questions)], nil
}

func (s *stubQueryService) ParseQuestions(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return []string{trimmed}
}

type stubDocumentService struct {
	downloadErr error
	tmpPath     string
}

func (s *stubDocumentService) IngestFile(ctx context.Context, filePath string) (int, error) {
	return 3, nil
}

func (s *stubDocumentService) DownloadToTemp(ctx context.Context, documentURL string) (string, error) {
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return s.tmpPath, nil
}

func newHackrxApp(t *testing.T, docSvc *stubDocumentService) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	c := NewHackrxController(&stubQueryService{answers: []string{"Yes, covered.", "No."}}, docSvc, "secret-token")
	c.RegisterRoutes(app)
	return app
}

func TestHackrxRun(t *testing.T) {
	t.Run("rejects wrong bearer token", func(t *testing.T) {
		app := newHackrxApp(t, &stubDocumentService{})

		req := httptest.NewRequest("POST", "/api/v1/hackrx/run", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer wrong")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects missing questions", func(t *testing.T) {
		app := newHackrxApp(t, &stubDocumentService{})

		body := `{"documents": "https://example.com/policy.pdf"}`
		req := httptest.NewRequest("POST", "/api/v1/hackrx/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-token")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errBody map[string]string
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &errBody))
		assert.Contains(t, errBody, "detail")
	})

	t.Run("maps download failure to 400", func(t *testing.T) {
		app := newHackrxApp(t, &stubDocumentService{downloadErr: errors.New("download document: status 404")})

		body := `{"documents": "https://example.com/missing.pdf", "questions": ["Is knee surgery covered?"]}`
		req := httptest.NewRequest("POST", "/api/v1/hackrx/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-token")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("answers questions from the referenced document", func(t *testing.T) {
		tmp := t.TempDir() + "/policy.pdf"
		app := newHackrxApp(t, &stubDocumentService{tmpPath: tmp})

		body := `{"documents": "https://example.com/policy.pdf", "questions": ["Is knee surgery covered?", "Is dental covered?"]}`
		req := httptest.NewRequest("POST", "/api/v1/hackrx/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-token")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var res dto.RunResponse
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &res))
		assert.Equal(t, []string{"Yes, covered.", "No."}, res.Answers)
	})
}

func TestQuery(t *testing.T) {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	c := NewQueryController(&stubQueryService{}, &stubDocumentService{})
	c.RegisterRoutes(app)

	t.Run("empty query is a 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/query", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errBody map[string]string
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &errBody))
		assert.Contains(t, errBody, "detail")
	})

	t.Run("returns parsed query and decision", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/query?query=46M+knee+surgery+Pune", nil)

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var res dto.QueryResponse
		raw, _ := io.ReadAll(resp.Body)
		assert.NoError(t, json.Unmarshal(raw, &res))
		assert.Equal(t, "approved", res.DecisionResult["decision"])
	})
}
