package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GradUWate/GradUWate-backend/internal/graphdb"
	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/services"
)

type GraphHandler struct {
	log          *logger.Logger
	graphService services.GraphQueryService
}

func NewGraphHandler(log *logger.Logger, graphService services.GraphQueryService) *GraphHandler {
	return &GraphHandler{
		log:          log.With("handler", "GraphHandler"),
		graphService: graphService,
	}
}

func depthParam(c *gin.Context) int {
	depth, err := strconv.Atoi(c.Query("depth"))
	if err != nil {
		return 0 // service applies its default
	}
	return depth
}

// Backpath returns the subgraph of courses feeding into a course.
func (h *GraphHandler) Backpath(c *gin.Context) {
	code := c.Param("code")
	sub, err := h.graphService.Backward(c.Request.Context(), code, depthParam(c))
	if err != nil {
		h.respondGraphError(c, "backpath", code, err)
		return
	}
	RespondOK(c, sub)
}

// Frontpath returns the subgraph of courses a course unlocks.
func (h *GraphHandler) Frontpath(c *gin.Context) {
	code := c.Param("code")
	sub, err := h.graphService.Forward(c.Request.Context(), code, depthParam(c))
	if err != nil {
		h.respondGraphError(c, "frontpath", code, err)
		return
	}
	RespondOK(c, sub)
}

// ByPlans aggregates prerequisite subgraphs for a set of academic plans.
func (h *GraphHandler) ByPlans(c *gin.Context) {
	var plans []string
	if err := c.ShouldBindJSON(&plans); err != nil || len(plans) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_plans", errors.New("request body must be a non-empty JSON array of plan names"))
		return
	}
	result, err := h.graphService.AggregateForPlans(c.Request.Context(), plans, depthParam(c))
	if err != nil {
		h.respondGraphError(c, "by-plans", "", err)
		return
	}
	RespondOK(c, result)
}

func (h *GraphHandler) respondGraphError(c *gin.Context, op, code string, err error) {
	if errors.Is(err, graphdb.ErrNotReady) {
		RespondError(c, http.StatusServiceUnavailable, "graph_backend_unavailable", err)
		return
	}
	h.log.Error("Graph query failed", "op", op, "code", code, "error", err)
	RespondError(c, http.StatusInternalServerError, "graph_query_failed", err)
}
