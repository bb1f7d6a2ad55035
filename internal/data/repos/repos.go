package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos/learning"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type LessonRepo = learning.LessonRepo

type Set struct {
	Lesson LessonRepo
}

func New(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Lesson: learning.NewLessonRepo(db, log),
	}
}
