package service

import (
	"context"
	"fmt"
	"sync"

	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/pkg/logger"
	"ai-claims-be/internal/repository/contract"
	"ai-claims-be/pkg/embedding"
)

type IRetrievalService interface {
	// StoreChunks embeds and indexes the given chunks. Fails on empty input.
	StoreChunks(ctx context.Context, chunks []*entity.PolicyChunk) error
	SimilaritySearch(ctx context.Context, query string, k int) ([]*entity.RetrievedChunk, error)
	// Warmup primes the embedding backend so the first real request does
	// not pay the model cold-start cost. Failures are logged and ignored.
	Warmup(ctx context.Context)
}

type retrievalService struct {
	chunkRepository   contract.PolicyChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger

	ensureMu sync.Mutex
	ensured  bool
}

func NewRetrievalService(
	chunkRepository contract.PolicyChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		chunkRepository:   chunkRepository,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

// ensureCollection runs collection setup on first use. Only success is
// latched: a transient failure (DB hiccup during migration) is retried on
// the next call instead of wedging the service for the process lifetime.
func (s *retrievalService) ensureCollection(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.ensured {
		return nil
	}
	if err := s.chunkRepository.EnsureCollection(ctx); err != nil {
		return err
	}
	s.ensured = true
	return nil
}

func (s *retrievalService) StoreChunks(ctx context.Context, chunks []*entity.PolicyChunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to store")
	}

	if err := s.ensureCollection(ctx); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	embeddings := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embeddingProvider.Embed(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("embed chunk %d of %q: %w", i, chunk.Source, err)
		}
		embeddings[i] = vec
	}

	return s.chunkRepository.StoreBatch(ctx, chunks, embeddings)
}

func (s *retrievalService) SimilaritySearch(ctx context.Context, query string, k int) ([]*entity.RetrievedChunk, error) {
	if err := s.ensureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	vec, err := s.embeddingProvider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.chunkRepository.SearchSimilar(ctx, vec, k)
}

func (s *retrievalService) Warmup(ctx context.Context) {
	if _, err := s.embeddingProvider.Embed(ctx, "warmup"); err != nil {
		s.logger.Warn("retrieval", "Embedding warmup failed", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("retrieval", "Embedding provider warmed up", nil)
}
