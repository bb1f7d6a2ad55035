package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type LessonService interface {
	GetLesson(ctx context.Context, tx *gorm.DB, lessonID string) (*domain.Lesson, error)
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	lessonRepo repos.LessonRepo
}

func NewLessonService(db *gorm.DB, baseLog *logger.Logger, lessonRepo repos.LessonRepo) LessonService {
	return &lessonService{
		db:         db,
		log:        baseLog.With("service", "LessonService"),
		lessonRepo: lessonRepo,
	}
}

func (s *lessonService) GetLesson(ctx context.Context, tx *gorm.DB, lessonID string) (*domain.Lesson, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, ErrInvalidLessonID
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	lesson, err := s.lessonRepo.GetByID(ctx, transaction, lessonID)
	if err != nil {
		s.log.Warn("GetLesson: load failed", "error", err, "lesson_id", lessonID)
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	return lesson, nil
}
