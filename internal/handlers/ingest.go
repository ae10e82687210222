package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/services"
)

type IngestHandler struct {
	log           *logger.Logger
	ingestService services.IngestService
}

func NewIngestHandler(log *logger.Logger, ingestService services.IngestService) *IngestHandler {
	return &IngestHandler{
		log:           log.With("handler", "IngestHandler"),
		ingestService: ingestService,
	}
}

type ingestRequest struct {
	Source  string                     `json:"source"`
	Records []services.RawCourseRecord `json:"records" binding:"required"`
}

func (h *IngestHandler) IngestRecords(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_ingest_body", err)
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}
	summary, err := h.ingestService.IngestRecords(c.Request.Context(), req.Source, req.Records)
	if err != nil {
		h.log.Error("IngestRecords failed", "source", req.Source, "error", err)
		RespondError(c, http.StatusInternalServerError, "ingest_failed", err)
		return
	}
	RespondOK(c, summary)
}
