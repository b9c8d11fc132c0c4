package mapper

import (
	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type PolicyChunkMapper struct{}

func NewPolicyChunkMapper() *PolicyChunkMapper {
	return &PolicyChunkMapper{}
}

func (m *PolicyChunkMapper) ToModel(c *entity.PolicyChunk, embedding []float32) *model.PolicyChunk {
	if c == nil {
		return nil
	}
	return &model.PolicyChunk{
		Document:  c.Text,
		Source:    c.Source,
		Page:      c.Page,
		Embedding: pgvector.NewVector(embedding),
	}
}

func (m *PolicyChunkMapper) ToRetrieved(c *model.PolicyChunk, score float64) *entity.RetrievedChunk {
	if c == nil {
		return nil
	}
	return &entity.RetrievedChunk{
		Text:   c.Document,
		Source: c.Source,
		Page:   c.Page,
		Score:  score,
	}
}

type IngestionMapper struct{}

func NewIngestionMapper() *IngestionMapper {
	return &IngestionMapper{}
}

func (m *IngestionMapper) ToEntity(i *model.Ingestion) *entity.IngestionRecord {
	if i == nil {
		return nil
	}
	return &entity.IngestionRecord{
		Id:        i.Id,
		Source:    i.Source,
		Chunks:    i.Chunks,
		CreatedAt: i.CreatedAt,
	}
}

func (m *IngestionMapper) ToModel(i *entity.IngestionRecord) *model.Ingestion {
	if i == nil {
		return nil
	}
	return &model.Ingestion{
		Id:     i.Id,
		Source: i.Source,
		Chunks: i.Chunks,
	}
}
