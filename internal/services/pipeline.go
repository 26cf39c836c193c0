package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/pkg/logger"
	"github.com/federaltalks/iq-backend/internal/repos"
	"github.com/federaltalks/iq-backend/internal/types"
)

type PipelineService interface {
	CreateStage(ctx context.Context, userID uuid.UUID, name, color string, orderIndex int) (*types.PipelineStage, error)
	ListStages(ctx context.Context, userID uuid.UUID) ([]types.PipelineStage, error)
	DeleteStage(ctx context.Context, userID, stageID uuid.UUID) error

	PlaceContract(ctx context.Context, userID uuid.UUID, pc *types.PipelineContract) (*types.PipelineContract, error)
	ListPlacements(ctx context.Context, userID uuid.UUID) ([]types.PipelineContract, error)
	MoveToStage(ctx context.Context, userID, placementID, stageID uuid.UUID) (*types.PipelineContract, error)
	RemovePlacement(ctx context.Context, userID, placementID uuid.UUID) error
}

type pipelineService struct {
	db           *gorm.DB
	log          *logger.Logger
	pipelineRepo repos.PipelineRepo
}

func NewPipelineService(db *gorm.DB, log *logger.Logger, pipelineRepo repos.PipelineRepo) PipelineService {
	serviceLog := log.With("service", "PipelineService")
	return &pipelineService{db: db, log: serviceLog, pipelineRepo: pipelineRepo}
}

func (ps *pipelineService) CreateStage(ctx context.Context, userID uuid.UUID, name, color string, orderIndex int) (*types.PipelineStage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: stage name is required", apperrors.ErrInvalidArgument)
	}
	stage := &types.PipelineStage{
		UserID:     userID,
		Name:       name,
		Color:      color,
		OrderIndex: orderIndex,
	}
	return ps.pipelineRepo.CreateStage(ctx, nil, stage)
}

func (ps *pipelineService) ListStages(ctx context.Context, userID uuid.UUID) ([]types.PipelineStage, error) {
	return ps.pipelineRepo.ListStages(ctx, nil, userID)
}

func (ps *pipelineService) DeleteStage(ctx context.Context, userID, stageID uuid.UUID) error {
	stages, err := ps.pipelineRepo.ListStages(ctx, nil, userID)
	if err != nil {
		return err
	}
	for _, stage := range stages {
		if stage.ID == stageID {
			return ps.pipelineRepo.DeleteStage(ctx, nil, stageID)
		}
	}
	return apperrors.ErrNotFound
}

func (ps *pipelineService) PlaceContract(ctx context.Context, userID uuid.UUID, pc *types.PipelineContract) (*types.PipelineContract, error) {
	if pc.ContractID == uuid.Nil || pc.StageID == uuid.Nil {
		return nil, fmt.Errorf("%w: contract and stage are required", apperrors.ErrInvalidArgument)
	}
	if pc.Probability < 0 || pc.Probability > 100 {
		return nil, fmt.Errorf("%w: probability must be between 0 and 100", apperrors.ErrInvalidArgument)
	}
	pipeline, err := ps.pipelineRepo.GetOrCreateDefaultPipeline(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pipeline: %w", err)
	}
	pc.PipelineID = pipeline.ID
	return ps.pipelineRepo.PlaceContract(ctx, nil, pc)
}

func (ps *pipelineService) ListPlacements(ctx context.Context, userID uuid.UUID) ([]types.PipelineContract, error) {
	return ps.pipelineRepo.ListPlacements(ctx, nil, userID)
}

func (ps *pipelineService) MoveToStage(ctx context.Context, userID, placementID, stageID uuid.UUID) (*types.PipelineContract, error) {
	placement, err := ps.ownedPlacement(ctx, userID, placementID)
	if err != nil {
		return nil, err
	}
	placement.StageID = stageID
	placement.Pipeline = nil
	return ps.pipelineRepo.UpdatePlacement(ctx, nil, placement)
}

func (ps *pipelineService) RemovePlacement(ctx context.Context, userID, placementID uuid.UUID) error {
	if _, err := ps.ownedPlacement(ctx, userID, placementID); err != nil {
		return err
	}
	return ps.pipelineRepo.RemovePlacement(ctx, nil, placementID)
}

// ownedPlacement resolves a placement and hides other users' placements
// behind not-found.
func (ps *pipelineService) ownedPlacement(ctx context.Context, userID, placementID uuid.UUID) (*types.PipelineContract, error) {
	placement, err := ps.pipelineRepo.GetPlacement(ctx, nil, placementID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if placement.Pipeline == nil || placement.Pipeline.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return placement, nil
}
