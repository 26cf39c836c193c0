package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/ingest"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// Download serves the upload skeleton file for a record kind. Format
// defaults to csv.
func (th *TemplateHandler) Download(c *gin.Context) {
	kind := ingest.Kind(c.Param("kind"))
	format := ingest.Format(c.DefaultQuery("format", "csv"))

	file, err := ingest.Template(kind, format)
	if err != nil {
		RespondError(c, statusFromError(err), "template_failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.MIMEType, file.Content)
}
