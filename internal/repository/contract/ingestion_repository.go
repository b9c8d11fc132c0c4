package contract

import (
	"context"

	"ai-claims-be/internal/entity"
)

type IngestionRepository interface {
	Create(ctx context.Context, record *entity.IngestionRecord) error
}
