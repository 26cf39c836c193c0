package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/services"
	"github.com/federaltalks/iq-backend/internal/types"
)

// AdminHandler groups the admin-only surfaces: account management and the
// demo request queue.
type AdminHandler struct {
	userService        services.UserService
	demoRequestService services.DemoRequestService
}

func NewAdminHandler(userService services.UserService, demoRequestService services.DemoRequestService) *AdminHandler {
	return &AdminHandler{userService: userService, demoRequestService: demoRequestService}
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.userService.List(c.Request.Context())
	if err != nil {
		RespondError(c, statusFromError(err), "user_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

type updateUserRequest struct {
	IsActive  *bool   `json:"is_active"`
	Role      *string `json:"role"`
	TrialDays *int    `json:"trial_days"`
}

// UpdateUser applies whichever account controls the request carries.
func (ah *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user *types.User
	if req.IsActive != nil {
		if user, err = ah.userService.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
			RespondError(c, statusFromError(err), "user_update_failed", err)
			return
		}
	}
	if req.Role != nil {
		if user, err = ah.userService.SetRole(c.Request.Context(), id, *req.Role); err != nil {
			RespondError(c, statusFromError(err), "user_update_failed", err)
			return
		}
	}
	if req.TrialDays != nil {
		if user, err = ah.userService.SetTrialDays(c.Request.Context(), id, *req.TrialDays); err != nil {
			RespondError(c, statusFromError(err), "user_update_failed", err)
			return
		}
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no account fields given"})
		return
	}
	RespondOK(c, user)
}

func (ah *AdminHandler) ListDemoRequests(c *gin.Context) {
	requests, err := ah.demoRequestService.List(c.Request.Context())
	if err != nil {
		RespondError(c, statusFromError(err), "demo_request_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"demo_requests": requests})
}

type updateDemoStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (ah *AdminHandler) UpdateDemoRequestStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	var req updateDemoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := ah.demoRequestService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondError(c, statusFromError(err), "demo_request_update_failed", err)
		return
	}
	RespondOK(c, updated)
}
