package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonbridge-backend/internal/http/response"
	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/services"
)

type LessonHandler struct {
	lessons  services.LessonService
	checkIns services.CheckInService
	metrics  *observability.Metrics
}

func NewLessonHandler(lessons services.LessonService, checkIns services.CheckInService, metrics *observability.Metrics) *LessonHandler {
	return &LessonHandler{lessons: lessons, checkIns: checkIns, metrics: metrics}
}

// GET /api/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	lesson, err := h.lessons.GetLesson(c.Request.Context(), nil, c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

type checkInRequest struct {
	OnlyIfUnset bool `json:"onlyIfUnset"`
}

// POST /api/lessons/:id/check-in
func (h *LessonHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	res, err := h.checkIns.CheckIn(c.Request.Context(), nil, c.Param("id"), services.CheckInOptions{
		OnlyIfUnset: req.OnlyIfUnset,
	})
	switch {
	case errors.Is(err, services.ErrLessonNotFound):
		h.metrics.CheckIn("not_found")
	case err != nil:
		h.metrics.CheckIn("error")
	case res.AlreadyCheckedIn:
		h.metrics.CheckIn("already_checked_in")
	default:
		h.metrics.CheckIn("checked_in")
	}
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
