package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/federaltalks/iq-backend/internal/pkg/errors"
	"github.com/federaltalks/iq-backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (fh *FavoriteHandler) Add(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("contract_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	favorite, err := fh.favoriteService.Add(c.Request.Context(), actorID(c), contractID)
	if err != nil {
		RespondError(c, statusFromError(err), "favorite_add_failed", err)
		return
	}
	RespondOK(c, favorite)
}

func (fh *FavoriteHandler) List(c *gin.Context) {
	favorites, err := fh.favoriteService.List(c.Request.Context(), actorID(c))
	if err != nil {
		RespondError(c, statusFromError(err), "favorite_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"favorites": favorites})
}

func (fh *FavoriteHandler) Remove(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("contract_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperrors.ErrInvalidArgument)
		return
	}
	if err := fh.favoriteService.Remove(c.Request.Context(), actorID(c), contractID); err != nil {
		RespondError(c, statusFromError(err), "favorite_remove_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": contractID})
}
