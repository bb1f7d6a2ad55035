package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/facebookgo/clock"
	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type CheckInOptions struct {
	// OnlyIfUnset keeps an existing check-in timestamp instead of overwriting it.
	OnlyIfUnset bool
}

type CheckInResult struct {
	Lesson           *domain.Lesson `json:"lesson"`
	CheckedInAt      time.Time      `json:"checkedInAt"`
	AlreadyCheckedIn bool           `json:"alreadyCheckedIn"`
}

type CheckInService interface {
	CheckIn(ctx context.Context, tx *gorm.DB, lessonID string, opts CheckInOptions) (*CheckInResult, error)
}

type checkInService struct {
	db         *gorm.DB
	log        *logger.Logger
	clock      clock.Clock
	lessonRepo repos.LessonRepo
	emitter    LessonEmitter
}

func NewCheckInService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clk clock.Clock,
	lessonRepo repos.LessonRepo,
	emitter LessonEmitter,
) CheckInService {
	if clk == nil {
		clk = clock.New()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &checkInService{
		db:         db,
		log:        baseLog.With("service", "CheckInService"),
		clock:      clk,
		lessonRepo: lessonRepo,
		emitter:    emitter,
	}
}

func (s *checkInService) CheckIn(ctx context.Context, tx *gorm.DB, lessonID string, opts CheckInOptions) (*CheckInResult, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, ErrInvalidLessonID
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	now := ceilMicro(s.clock.Now().UTC())

	n, err := s.lessonRepo.SetCheckInAt(ctx, transaction, lessonID, now, opts.OnlyIfUnset)
	if err != nil {
		return nil, fmt.Errorf("check in lesson %s: %w", lessonID, err)
	}

	lesson, err := s.lessonRepo.GetByID(ctx, transaction, lessonID)
	if err != nil {
		return nil, fmt.Errorf("reload lesson %s: %w", lessonID, err)
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	if n == 0 {
		if lesson.CheckedInAt == nil {
			// Row exists but nothing changed; only possible if it was
			// concurrently deleted or the update raced a clear.
			return nil, ErrLessonNotFound
		}
		s.log.Info("Lesson already checked in", "lesson_id", lessonID, "check_in_at", lesson.CheckedInAt)
		return &CheckInResult{Lesson: lesson, CheckedInAt: lesson.CheckedInAt.UTC(), AlreadyCheckedIn: true}, nil
	}

	s.log.Info("Lesson checked in", "lesson_id", lessonID, "check_in_at", now)
	evt := domain.LessonEvent{Type: domain.EventLessonCheckedIn, LessonID: lessonID, CheckedInAt: now}
	if err := s.emitter.Emit(ctx, evt); err != nil {
		s.log.Warn("Failed to emit check-in event", "lesson_id", lessonID, "error", err)
	}
	return &CheckInResult{Lesson: lesson, CheckedInAt: now}, nil
}

// ceilMicro rounds t up to the microsecond postgres stores, so the returned
// value equals a later read and is never earlier than the clock reading.
func ceilMicro(t time.Time) time.Time {
	c := t.Truncate(time.Microsecond)
	if c.Before(t) {
		c = c.Add(time.Microsecond)
	}
	return c
}
