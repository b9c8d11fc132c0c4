package implementation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/internal/repository/contract"

	"github.com/google/uuid"
)

// QdrantConfig holds the connection settings for a Qdrant REST endpoint.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

type QdrantChunkRepositoryImpl struct {
	baseURL    string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
	logger     logger.ILogger
}

func NewQdrantChunkRepository(cfg QdrantConfig, log logger.ILogger) contract.PolicyChunkRepository {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &QdrantChunkRepositoryImpl{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
		logger:     log,
	}
}

func (r *QdrantChunkRepositoryImpl) EnsureCollection(ctx context.Context) error {
	exists, err := r.collectionExists(ctx)
	if err != nil {
		r.logger.Warn("qdrant", "Failed to list collections, attempting create", map[string]interface{}{"error": err.Error()})
	}
	if exists {
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     r.dimension,
			"distance": "Cosine",
		},
	}
	// Another instance may create the collection between the existence
	// check and this call; creation failure is not fatal here.
	if err := r.putJSON(ctx, fmt.Sprintf("/collections/%s", r.collection), body, nil); err != nil {
		r.logger.Warn("qdrant", "Collection create returned error", map[string]interface{}{
			"collection": r.collection,
			"error":      err.Error(),
		})
	}
	return nil
}

func (r *QdrantChunkRepositoryImpl) collectionExists(ctx context.Context) (bool, error) {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if err := r.getJSON(ctx, "/collections", &resp); err != nil {
		return false, err
	}
	for _, c := range resp.Result.Collections {
		if c.Name == r.collection {
			return true, nil
		}
	}
	return false, nil
}

func (r *QdrantChunkRepositoryImpl) StoreBatch(ctx context.Context, chunks []*entity.PolicyChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	points := make([]map[string]interface{}, len(chunks))
	for i, c := range chunks {
		points[i] = map[string]interface{}{
			"id":     uuid.New().String(),
			"vector": embeddings[i],
			"payload": map[string]interface{}{
				"text":   c.Text,
				"source": c.Source,
				"page":   c.Page,
			},
		}
	}

	path := fmt.Sprintf("/collections/%s/points?wait=true", r.collection)
	return r.putJSON(ctx, path, map[string]interface{}{"points": points}, nil)
}

func (r *QdrantChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	body := map[string]interface{}{
		"vector":       embedding,
		"limit":        limit,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}

	path := fmt.Sprintf("/collections/%s/points/search", r.collection)
	if err := r.postJSON(ctx, path, body, &resp); err != nil {
		return nil, err
	}

	retrieved := make([]*entity.RetrievedChunk, 0, len(resp.Result))
	for _, hit := range resp.Result {
		chunk := &entity.RetrievedChunk{Score: hit.Score}
		if text, ok := hit.Payload["text"].(string); ok {
			chunk.Text = text
		}
		if source, ok := hit.Payload["source"].(string); ok {
			chunk.Source = source
		}
		if page, ok := hit.Payload["page"].(float64); ok {
			p := int(page)
			chunk.Page = &p
		}
		retrieved = append(retrieved, chunk)
	}
	return retrieved, nil
}

func (r *QdrantChunkRepositoryImpl) getJSON(ctx context.Context, path string, out interface{}) error {
	return r.do(ctx, http.MethodGet, path, nil, out)
}

func (r *QdrantChunkRepositoryImpl) putJSON(ctx context.Context, path string, body, out interface{}) error {
	return r.do(ctx, http.MethodPut, path, body, out)
}

func (r *QdrantChunkRepositoryImpl) postJSON(ctx context.Context, path string, body, out interface{}) error {
	return r.do(ctx, http.MethodPost, path, body, out)
}

func (r *QdrantChunkRepositoryImpl) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("api-key", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s: status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode qdrant response: %w", err)
		}
	}
	return nil
}
