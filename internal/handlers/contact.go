package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/federaltalks/iq-backend/internal/services"
	"github.com/federaltalks/iq-backend/internal/types"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (ch *ContactHandler) List(c *gin.Context) {
	contacts, err := ch.contactService.List(c.Request.Context())
	if err != nil {
		RespondError(c, statusFromError(err), "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"contacts": contacts})
}

func (ch *ContactHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	contact, err := ch.contactService.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, statusFromError(err), "get_failed", err)
		return
	}
	RespondOK(c, contact)
}

func (ch *ContactHandler) Create(c *gin.Context) {
	var contact types.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := ch.contactService.Create(c.Request.Context(), &contact)
	if err != nil {
		RespondError(c, statusFromError(err), "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *ContactHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	var patch types.Contact
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	updated, err := ch.contactService.Update(c.Request.Context(), id, &patch)
	if err != nil {
		RespondError(c, statusFromError(err), "update_failed", err)
		return
	}
	RespondOK(c, updated)
}

func (ch *ContactHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}
	if err := ch.contactService.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, statusFromError(err), "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
