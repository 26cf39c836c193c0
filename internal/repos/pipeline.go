package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/types"
)

type PipelineRepo interface {
	GetOrCreateDefaultPipeline(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Pipeline, error)

	CreateStage(ctx context.Context, tx *gorm.DB, stage *types.PipelineStage) (*types.PipelineStage, error)
	ListStages(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.PipelineStage, error)
	UpdateStage(ctx context.Context, tx *gorm.DB, stage *types.PipelineStage) (*types.PipelineStage, error)
	DeleteStage(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	PlaceContract(ctx context.Context, tx *gorm.DB, pc *types.PipelineContract) (*types.PipelineContract, error)
	ListPlacements(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.PipelineContract, error)
	GetPlacement(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PipelineContract, error)
	UpdatePlacement(ctx context.Context, tx *gorm.DB, pc *types.PipelineContract) (*types.PipelineContract, error)
	RemovePlacement(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type pipelineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPipelineRepo(db *gorm.DB, baseLog *logger.Logger) PipelineRepo {
	repoLog := baseLog.With("repo", "PipelineRepo")
	return &pipelineRepo{db: db, log: repoLog}
}

// GetOrCreateDefaultPipeline returns the user's default pipeline, creating it
// on first use.
func (pr *pipelineRepo) GetOrCreateDefaultPipeline(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Pipeline, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var pipeline types.Pipeline
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&pipeline).Error
	if err == nil {
		return &pipeline, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	pipeline = types.Pipeline{
		UserID:    userID,
		Name:      "My Pipeline",
		IsDefault: true,
	}
	if err := transaction.WithContext(ctx).Create(&pipeline).Error; err != nil {
		return nil, err
	}
	return &pipeline, nil
}

func (pr *pipelineRepo) CreateStage(ctx context.Context, tx *gorm.DB, stage *types.PipelineStage) (*types.PipelineStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(stage).Error; err != nil {
		return nil, err
	}
	return stage, nil
}

func (pr *pipelineRepo) ListStages(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.PipelineStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []types.PipelineStage
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pipelineRepo) UpdateStage(ctx context.Context, tx *gorm.DB, stage *types.PipelineStage) (*types.PipelineStage, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(stage).Error; err != nil {
		return nil, err
	}
	return stage, nil
}

func (pr *pipelineRepo) DeleteStage(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.PipelineStage{}).Error
}

func (pr *pipelineRepo) PlaceContract(ctx context.Context, tx *gorm.DB, pc *types.PipelineContract) (*types.PipelineContract, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(pc).Error; err != nil {
		return nil, err
	}
	return pc, nil
}

func (pr *pipelineRepo) ListPlacements(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.PipelineContract, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []types.PipelineContract
	if err := transaction.WithContext(ctx).
		Joins("JOIN pipelines ON pipelines.id = pipeline_contracts.pipeline_id").
		Where("pipelines.user_id = ?", userID).
		Preload("Contract").
		Preload("Stage").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pipelineRepo) GetPlacement(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PipelineContract, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.PipelineContract
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Preload("Pipeline").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pipelineRepo) UpdatePlacement(ctx context.Context, tx *gorm.DB, pc *types.PipelineContract) (*types.PipelineContract, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(pc).Error; err != nil {
		return nil, err
	}
	return pc, nil
}

func (pr *pipelineRepo) RemovePlacement(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.PipelineContract{}).Error
}
