package learning

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lessons []*domain.Lesson) ([]*domain.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, lessonID string) (*domain.Lesson, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []string) ([]*domain.Lesson, error)
	// SetCheckInAt stamps check_in_at and reports how many rows changed.
	// With onlyIfUnset, lessons that already carry a timestamp are left alone.
	SetCheckInAt(ctx context.Context, tx *gorm.DB, lessonID string, at time.Time, onlyIfUnset bool) (int64, error)
	ClearCheckInAt(ctx context.Context, tx *gorm.DB, lessonID string) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	repoLog := baseLog.With("repo", "LessonRepo")
	return &lessonRepo{db: db, log: repoLog}
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lessons []*domain.Lesson) ([]*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(lessons) == 0 {
		return []*domain.Lesson{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetByID returns (nil, nil) when no live lesson has the id.
func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, lessonID string) (*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lesson domain.Lesson
	err := transaction.WithContext(ctx).
		Where("id = ?", lessonID).
		Take(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []string) ([]*domain.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Lesson
	if len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) SetCheckInAt(ctx context.Context, tx *gorm.DB, lessonID string, at time.Time, onlyIfUnset bool) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", lessonID)
	if onlyIfUnset {
		q = q.Where("check_in_at IS NULL")
	}
	res := q.Updates(map[string]interface{}{
		"check_in_at": at,
		"updated_at":  at,
	})
	if res.Error != nil {
		r.log.Warn("check-in update failed", "lesson_id", lessonID, "error", res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *lessonRepo) ClearCheckInAt(ctx context.Context, tx *gorm.DB, lessonID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", lessonID).
		Update("check_in_at", nil)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
