package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"ai-claims-be/internal/dto"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/pkg/chunker"
)

type IDocumentService interface {
	// IngestFile chunks and indexes a local document, returning the
	// number of chunks stored.
	IngestFile(ctx context.Context, filePath string) (int, error)
	// DownloadToTemp fetches a remote document to a temp file. The caller
	// owns the returned path and must remove it.
	DownloadToTemp(ctx context.Context, documentURL string) (string, error)
}

type documentService struct {
	retrievalService IRetrievalService
	publisherService IPublisherService
	httpClient       *http.Client
	logger           logger.ILogger
}

func NewDocumentService(
	retrievalService IRetrievalService,
	publisherService IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		retrievalService: retrievalService,
		publisherService: publisherService,
		httpClient:       &http.Client{Timeout: 60 * time.Second},
		logger:           log,
	}
}

func (s *documentService) IngestFile(ctx context.Context, filePath string) (int, error) {
	chunks, err := chunker.LoadAndChunk(filePath)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no text content found in %s", filePath)
	}

	if err := s.retrievalService.StoreChunks(ctx, chunks); err != nil {
		return 0, err
	}

	s.logger.Info("document", "Document chunked and indexed", map[string]interface{}{
		"source": chunks[0].Source,
		"chunks": len(chunks),
	})

	// Notify the audit consumer. Ingestion already succeeded, so a
	// publish failure must not fail the request.
	payload := dto.PublishDocumentIngestedMessage{
		Source: chunks[0].Source,
		Chunks: len(chunks),
	}
	payloadJson, _ := json.Marshal(payload)
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		s.logger.Warn("document", "Failed to publish ingestion event", map[string]interface{}{"error": err.Error()})
	}

	return len(chunks), nil
}

func (s *documentService) DownloadToTemp(ctx context.Context, documentURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download document: status %d", resp.StatusCode)
	}

	ext := extFromURL(documentURL)
	tmpFile, err := os.CreateTemp("", "claims-doc-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("save document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// extFromURL pulls the file extension from the URL path, ignoring query
// strings. Pre-signed URLs without an extension are assumed to be PDFs.
func extFromURL(documentURL string) string {
	parsed, err := url.Parse(documentURL)
	if err != nil {
		return ".pdf"
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if ext != ".pdf" && ext != ".docx" {
		return ".pdf"
	}
	return ext
}
