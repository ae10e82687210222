package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GradUWate/GradUWate-backend/internal/logger"
	"github.com/GradUWate/GradUWate-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	code := c.Param("code")
	detail, err := h.courseService.GetCourse(c.Request.Context(), nil, code)
	if errors.Is(err, services.ErrCourseNotFound) {
		RespondError(c, http.StatusNotFound, "course_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("GetCourse failed", "code", code, "error", err)
		RespondError(c, http.StatusInternalServerError, "load_course_failed", err)
		return
	}
	RespondOK(c, detail)
}
