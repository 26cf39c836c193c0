package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

// UploadLogRepo is append-only: audit rows are never updated or deleted.
type UploadLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, log *types.UploadLog) (*types.UploadLog, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]types.UploadLog, error)
}

type uploadLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadLogRepo(db *gorm.DB, baseLog *logger.Logger) UploadLogRepo {
	repoLog := baseLog.With("repo", "UploadLogRepo")
	return &uploadLogRepo{db: db, log: repoLog}
}

func (ur *uploadLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.UploadLog) (*types.UploadLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (ur *uploadLogRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]types.UploadLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	query := transaction.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []types.UploadLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
