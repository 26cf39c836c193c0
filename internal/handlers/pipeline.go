package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/services"
	"github.com/federaltalks/iq-backend/internal/types"
)

type PipelineHandler struct {
	pipelineService services.PipelineService
}

func NewPipelineHandler(pipelineService services.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelineService: pipelineService}
}

type createStageRequest struct {
	Name       string `json:"name" binding:"required"`
	Color      string `json:"color"`
	OrderIndex int    `json:"order_index"`
}

func (ph *PipelineHandler) CreateStage(c *gin.Context) {
	var req createStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stage, err := ph.pipelineService.CreateStage(c.Request.Context(), actorID(c), req.Name, req.Color, req.OrderIndex)
	if err != nil {
		RespondError(c, statusFromError(err), "stage_create_failed", err)
		return
	}
	RespondOK(c, stage)
}

func (ph *PipelineHandler) ListStages(c *gin.Context) {
	stages, err := ph.pipelineService.ListStages(c.Request.Context(), actorID(c))
	if err != nil {
		RespondError(c, statusFromError(err), "stage_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"stages": stages})
}

func (ph *PipelineHandler) DeleteStage(c *gin.Context) {
	stageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	if err := ph.pipelineService.DeleteStage(c.Request.Context(), actorID(c), stageID); err != nil {
		RespondError(c, statusFromError(err), "stage_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": stageID})
}

type placeContractRequest struct {
	ContractID uuid.UUID `json:"contract_id" binding:"required"`
	StageID    uuid.UUID `json:"stage_id" binding:"required"`
	Notes      string    `json:"notes"`
}

func (ph *PipelineHandler) PlaceContract(c *gin.Context) {
	var req placeContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	placement, err := ph.pipelineService.PlaceContract(c.Request.Context(), actorID(c), &types.PipelineContract{
		ContractID: req.ContractID,
		StageID:    req.StageID,
		Notes:      req.Notes,
	})
	if err != nil {
		RespondError(c, statusFromError(err), "placement_failed", err)
		return
	}
	RespondOK(c, placement)
}

func (ph *PipelineHandler) ListPlacements(c *gin.Context) {
	placements, err := ph.pipelineService.ListPlacements(c.Request.Context(), actorID(c))
	if err != nil {
		RespondError(c, statusFromError(err), "placement_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"placements": placements})
}

type moveToStageRequest struct {
	StageID uuid.UUID `json:"stage_id" binding:"required"`
}

func (ph *PipelineHandler) MoveToStage(c *gin.Context) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	var req moveToStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	placement, err := ph.pipelineService.MoveToStage(c.Request.Context(), actorID(c), placementID, req.StageID)
	if err != nil {
		RespondError(c, statusFromError(err), "placement_move_failed", err)
		return
	}
	RespondOK(c, placement)
}

func (ph *PipelineHandler) RemovePlacement(c *gin.Context) {
	placementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	if err := ph.pipelineService.RemovePlacement(c.Request.Context(), actorID(c), placementID); err != nil {
		RespondError(c, statusFromError(err), "placement_remove_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": placementID})
}
