package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/services"
)

type PlanHandler struct {
	log         *logger.Logger
	planService services.PlanService
}

func NewPlanHandler(log *logger.Logger, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		log:         log.With("handler", "PlanHandler"),
		planService: planService,
	}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	RespondOK(c, gin.H{"plans": h.planService.List()})
}
