package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/federaltalks/iq-backend/internal/requestdata"
	"github.com/federaltalks/iq-backend/internal/services"
	"github.com/federaltalks/iq-backend/internal/types"
)

type ContractHandler struct {
	contractService services.ContractService
}

func NewContractHandler(contractService services.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

func (ch *ContractHandler) List(c *gin.Context) {
	contracts, err := ch.contractService.List(c.Request.Context())
	if err != nil {
		RespondError(c, statusFromError(err), "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"contracts": contracts})
}

func (ch *ContractHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}
	contract, err := ch.contractService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, statusFromError(err), "get_failed", err)
		return
	}
	RespondOK(c, contract)
}

func (ch *ContractHandler) Create(c *gin.Context) {
	var contract types.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	actor := actorID(c)
	created, err := ch.contractService.Create(c.Request.Context(), actor, &contract)
	if err != nil {
		RespondError(c, statusFromError(err), "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *ContractHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}
	var patch types.Contract
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := ch.contractService.Update(c.Request.Context(), actorID(c), id, &patch)
	if err != nil {
		RespondError(c, statusFromError(err), "update_failed", err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ContractHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := ch.contractService.UpdateStatus(c.Request.Context(), actorID(c), id, req.Status)
	if err != nil {
		RespondError(c, statusFromError(err), "status_update_failed", err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ContractHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}
	if err := ch.contractService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, statusFromError(err), "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func actorID(c *gin.Context) uuid.UUID {
	session := requestdata.GetSession(c.Request.Context())
	if session == nil {
		return uuid.Nil
	}
	return session.UserID
}
