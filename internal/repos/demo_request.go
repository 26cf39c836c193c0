package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

type DemoRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, req *types.DemoRequest) (*types.DemoRequest, error)
	List(ctx context.Context, tx *gorm.DB) ([]types.DemoRequest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DemoRequest, error)
	Update(ctx context.Context, tx *gorm.DB, req *types.DemoRequest) (*types.DemoRequest, error)
}

type demoRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDemoRequestRepo(db *gorm.DB, baseLog *logger.Logger) DemoRequestRepo {
	repoLog := baseLog.With("repo", "DemoRequestRepo")
	return &demoRequestRepo{db: db, log: repoLog}
}

func (dr *demoRequestRepo) Create(ctx context.Context, tx *gorm.DB, req *types.DemoRequest) (*types.DemoRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

func (dr *demoRequestRepo) List(ctx context.Context, tx *gorm.DB) ([]types.DemoRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []types.DemoRequest
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *demoRequestRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DemoRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.DemoRequest
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *demoRequestRepo) Update(ctx context.Context, tx *gorm.DB, req *types.DemoRequest) (*types.DemoRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Save(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}
