package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceProvider calls the HuggingFace Inference API feature-extraction
// pipeline for sentence-transformer models (all-MiniLM-L6-v2 by default,
// which produces 384-dimensional vectors).
type HuggingFaceProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func NewHuggingFaceProvider(apiKey, model string) EmbeddingProvider {
	if model == "" {
		model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	return &HuggingFaceProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type hfEmbeddingRequest struct {
	Inputs []string `json:"inputs"`
}

func (p *HuggingFaceProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := hfEmbeddingRequest{Inputs: []string{text}}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://api-inference.huggingface.co/pipeline/feature-extraction/%s",
		p.model,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface embedding error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding response from huggingface")
	}

	return normalizeVector(vectors[0]), nil
}
