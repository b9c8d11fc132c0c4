package implementation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-claims-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestRepo(serverURL string) *QdrantChunkRepositoryImpl {
	repo := NewQdrantChunkRepository(QdrantConfig{
		URL:        serverURL,
		Collection: "insurance_docs",
		Dimension:  384,
	}, nopLogger{})
	return repo.(*QdrantChunkRepositoryImpl)
}

func TestQdrantEnsureCollection(t *testing.T) {
	t.Run("skips create when collection exists", func(t *testing.T) {
		var createCalled bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/collections":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"result": map[string]interface{}{
						"collections": []map[string]string{{"name": "insurance_docs"}},
					},
				})
			case r.Method == http.MethodPut:
				createCalled = true
			}
		}))
		defer srv.Close()

		err := newTestRepo(srv.URL).EnsureCollection(context.Background())
		assert.NoError(t, err)
		assert.False(t, createCalled)
	})

	t.Run("creates missing collection with cosine distance", func(t *testing.T) {
		var createBody map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/collections":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"result": map[string]interface{}{"collections": []map[string]string{}},
				})
			case r.Method == http.MethodPut && r.URL.Path == "/collections/insurance_docs":
				json.NewDecoder(r.Body).Decode(&createBody)
				w.Write([]byte(`{"result": true}`))
			}
		}))
		defer srv.Close()

		err := newTestRepo(srv.URL).EnsureCollection(context.Background())
		assert.NoError(t, err)

		vectors, ok := createBody["vectors"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, float64(384), vectors["size"])
		assert.Equal(t, "Cosine", vectors["distance"])
	})
}

func TestQdrantStoreBatch(t *testing.T) {
	var upsertBody struct {
		Points []struct {
			Id      string                 `json:"id"`
			Vector  []float32              `json:"vector"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"points"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/insurance_docs/points" {
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			json.NewDecoder(r.Body).Decode(&upsertBody)
			w.Write([]byte(`{"result": {"status": "completed"}}`))
		}
	}))
	defer srv.Close()

	page := 2
	chunks := []*entity.PolicyChunk{
		{Text: "knee surgery is covered", Source: "policy.pdf", Page: &page},
	}
	err := newTestRepo(srv.URL).StoreBatch(context.Background(), chunks, [][]float32{{0.1, 0.2}})

	assert.NoError(t, err)
	assert.Len(t, upsertBody.Points, 1)
	assert.NotEmpty(t, upsertBody.Points[0].Id)
	assert.Equal(t, "knee surgery is covered", upsertBody.Points[0].Payload["text"])
	assert.Equal(t, "policy.pdf", upsertBody.Points[0].Payload["source"])
	assert.Equal(t, float64(2), upsertBody.Points[0].Payload["page"])
}

func TestQdrantStoreBatchLengthMismatch(t *testing.T) {
	err := newTestRepo("http://unused").StoreBatch(
		context.Background(),
		[]*entity.PolicyChunk{{Text: "clause"}},
		nil,
	)
	assert.Error(t, err)
}

func TestQdrantSearchSimilar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/collections/insurance_docs/points/search" {
			var body map[string]interface{}
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, float64(3), body["limit"])
			assert.Equal(t, true, body["with_payload"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"result": []map[string]interface{}{
					{
						"score": 0.91,
						"payload": map[string]interface{}{
							"text":   "hospitalization is covered up to Rs. 5,00,000",
							"source": "policy.pdf",
							"page":   4,
						},
					},
					{
						"score": 0.72,
						"payload": map[string]interface{}{
							"text":   "waiting period of 24 months applies",
							"source": "policy.pdf",
						},
					},
				},
			})
		}
	}))
	defer srv.Close()

	results, err := newTestRepo(srv.URL).SearchSimilar(context.Background(), []float32{0.1}, 3)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 0.91, results[0].Score)
	assert.Equal(t, "policy.pdf", results[0].Source)
	assert.NotNil(t, results[0].Page)
	assert.Equal(t, 4, *results[0].Page)
	assert.Nil(t, results[1].Page)
}

func TestQdrantErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status": {"error": "forbidden"}}`))
	}))
	defer srv.Close()

	_, err := newTestRepo(srv.URL).SearchSimilar(context.Background(), []float32{0.1}, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
