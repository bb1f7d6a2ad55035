package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
	"github.com/yungbote/lessonbridge-backend/internal/services"
)

type Services struct {
	Lesson  services.LessonService
	CheckIn services.CheckInService
	Emitter services.LessonEmitter
}

func wireServices(db *gorm.DB, log *logger.Logger, rs Repos, hub *realtime.Hub, clients Clients) Services {
	log.Info("Wiring services...")

	var emitter services.LessonEmitter = &services.HubEmitter{Hub: hub}
	if clients.Bus != nil {
		emitter = &services.BusEmitter{Bus: clients.Bus}
	}

	return Services{
		Lesson:  services.NewLessonService(db, log, rs.Lesson),
		CheckIn: services.NewCheckInService(db, log, nil, rs.Lesson, emitter),
		Emitter: emitter,
	}
}
