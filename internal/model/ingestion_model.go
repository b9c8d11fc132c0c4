package model

import (
	"time"

	"github.com/google/uuid"
)

type Ingestion struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Source    string    `gorm:"type:text;not null;index"`
	Chunks    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Ingestion) TableName() string {
	return "ingestions"
}
