package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type Repos = repos.Set

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return repos.New(db, log)
}
