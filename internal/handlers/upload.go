package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/ingest"
	"github.com/federaltalks/iq-backend/internal/services"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// BulkUpload accepts a multipart file plus a "kind" form field of
// "contracts" or "contacts" and returns the end-of-operation summary.
func (uh *UploadHandler) BulkUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload file"})
		return
	}
	kind := ingest.Kind(c.PostForm("kind"))
	if kind != ingest.KindContracts && kind != ingest.KindContacts {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be contracts or contacts"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload file"})
		return
	}

	result, err := uh.uploadService.ProcessUpload(
		c.Request.Context(),
		actorID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
		kind,
	)
	if err != nil {
		RespondError(c, statusFromError(err), "upload_failed", err)
		return
	}
	RespondOK(c, result)
}

func (uh *UploadHandler) History(c *gin.Context) {
	logs, err := uh.uploadService.History(c.Request.Context(), 50)
	if err != nil {
		RespondError(c, statusFromError(err), "history_failed", err)
		return
	}
	RespondOK(c, gin.H{"uploads": logs})
}
