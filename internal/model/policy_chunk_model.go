package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type PolicyChunk struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document  string          `gorm:"type:text"`
	Source    string          `gorm:"type:text;not null;index"`
	Page      *int            `gorm:"type:integer"`
	Embedding pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2 uses 384 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (PolicyChunk) TableName() string {
	return "policy_chunks"
}
