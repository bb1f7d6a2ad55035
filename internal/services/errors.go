package services

import (
	"errors"
	"net/http"

	"github.com/yungbote/lessonbridge-backend/internal/platform/apierr"
)

var (
	ErrInvalidLessonID = apierr.New(http.StatusBadRequest, "invalid_lesson_id", errors.New("lesson id is required"))
	ErrLessonNotFound  = apierr.New(http.StatusNotFound, "lesson_not_found", errors.New("lesson not found"))
)
