package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/services"
)

type ReportHandler struct {
	contractService services.ContractService
	generator       services.ReportGenerator
}

func NewReportHandler(contractService services.ContractService, generator services.ReportGenerator) *ReportHandler {
	return &ReportHandler{contractService: contractService, generator: generator}
}

// Download renders a contract analysis report as a plain-text attachment.
func (rh *ReportHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	kind := services.ReportKind(c.DefaultQuery("kind", string(services.ReportSummary)))
	switch kind {
	case services.ReportSummary, services.ReportResearch:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report kind"})
		return
	}

	contract, err := rh.contractService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, statusFromError(err), "contract_not_found", err)
		return
	}
	report, err := rh.generator.Generate(c.Request.Context(), contract, kind)
	if err != nil {
		RespondError(c, statusFromError(err), "report_failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, report.MIMEType, []byte(report.Content))
}
