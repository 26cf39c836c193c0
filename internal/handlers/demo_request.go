package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/services"
	"github.com/federaltalks/iq-backend/internal/types"
)

// DemoRequestHandler is the unauthenticated intake side of the demo queue;
// review lives on AdminHandler.
type DemoRequestHandler struct {
	demoRequestService services.DemoRequestService
}

func NewDemoRequestHandler(demoRequestService services.DemoRequestService) *DemoRequestHandler {
	return &DemoRequestHandler{demoRequestService: demoRequestService}
}

type submitDemoRequest struct {
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name" binding:"required"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
	Message     string `json:"message"`
}

func (dh *DemoRequestHandler) Submit(c *gin.Context) {
	var req submitDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := dh.demoRequestService.Submit(c.Request.Context(), &types.DemoRequest{
		Email:       req.Email,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Message:     req.Message,
	})
	if err != nil {
		RespondError(c, statusFromError(err), "demo_request_failed", err)
		return
	}
	RespondOK(c, created)
}
