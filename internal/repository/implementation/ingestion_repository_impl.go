package implementation

import (
	"context"

	"ai-claims-be/internal/entity"
	"ai-claims-be/internal/mapper"
	"ai-claims-be/internal/repository/contract"

	"gorm.io/gorm"
)

type IngestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IngestionMapper
}

func NewIngestionRepository(db *gorm.DB) contract.IngestionRepository {
	return &IngestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewIngestionMapper(),
	}
}

func (r *IngestionRepositoryImpl) Create(ctx context.Context, record *entity.IngestionRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

