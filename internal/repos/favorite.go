package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

type FavoriteRepo interface {
	Add(ctx context.Context, tx *gorm.DB, fav *types.UserFavorite) (*types.UserFavorite, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.UserFavorite, error)
	Remove(ctx context.Context, tx *gorm.DB, userID, contractID uuid.UUID) error
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	repoLog := baseLog.With("repo", "FavoriteRepo")
	return &favoriteRepo{db: db, log: repoLog}
}

func (fr *favoriteRepo) Add(ctx context.Context, tx *gorm.DB, fav *types.UserFavorite) (*types.UserFavorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

func (fr *favoriteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.UserFavorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []types.UserFavorite
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Contract").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *favoriteRepo) Remove(ctx context.Context, tx *gorm.DB, userID, contractID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND contract_id = ?", userID, contractID).
		Delete(&types.UserFavorite{}).Error
}
