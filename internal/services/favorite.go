package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, contractID uuid.UUID) (*types.UserFavorite, error)
	List(ctx context.Context, userID uuid.UUID) ([]types.UserFavorite, error)
	Remove(ctx context.Context, userID, contractID uuid.UUID) error
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
}

func NewFavoriteService(db *gorm.DB, log *logger.Logger, favoriteRepo repos.FavoriteRepo) FavoriteService {
	serviceLog := log.With("service", "FavoriteService")
	return &favoriteService{db: db, log: serviceLog, favoriteRepo: favoriteRepo}
}

func (fs *favoriteService) Add(ctx context.Context, userID, contractID uuid.UUID) (*types.UserFavorite, error) {
	fav := &types.UserFavorite{UserID: userID, ContractID: contractID}
	return fs.favoriteRepo.Add(ctx, nil, fav)
}

func (fs *favoriteService) List(ctx context.Context, userID uuid.UUID) ([]types.UserFavorite, error) {
	return fs.favoriteRepo.ListByUser(ctx, nil, userID)
}

func (fs *favoriteService) Remove(ctx context.Context, userID, contractID uuid.UUID) error {
	return fs.favoriteRepo.Remove(ctx, nil, userID, contractID)
}
