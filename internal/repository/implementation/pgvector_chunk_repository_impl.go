package implementation

import (
	"context"
	"fmt"

	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/mapper"
	"ai-claims-be/internal/model"
	"ai-claims-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PgvectorChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PolicyChunkMapper
}

func NewPgvectorChunkRepository(db *gorm.DB) contract.PolicyChunkRepository {
	return &PgvectorChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewPolicyChunkMapper(),
	}
}

func (r *PgvectorChunkRepositoryImpl) EnsureCollection(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector extension: %w", err)
	}
	if err := r.db.WithContext(ctx).AutoMigrate(&model.PolicyChunk{}); err != nil {
		return fmt.Errorf("migrate policy_chunks: %w", err)
	}
	return nil
}

func (r *PgvectorChunkRepositoryImpl) StoreBatch(ctx context.Context, chunks []*entity.PolicyChunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	models := make([]*model.PolicyChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c, embeddings[i])
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *PgvectorChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.RetrievedChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so the score
	// reported to callers is 1 - (embedding <=> query_vector).
	type result struct {
		model.PolicyChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("policy_chunks").
		Select("policy_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	retrieved := make([]*entity.RetrievedChunk, len(results))
	for i, res := range results {
		retrieved[i] = r.mapper.ToRetrieved(&res.PolicyChunk, res.Similarity)
	}
	return retrieved, nil
}
