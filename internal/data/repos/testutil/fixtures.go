package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/domain"
)

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.Lesson {
	tb.Helper()
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	end := start.Add(45 * time.Minute)
	l := &domain.Lesson{
		ID:       "les_" + uuid.NewString(),
		Title:    title,
		StartsAt: &start,
		EndsAt:   &end,
		Metadata: datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedCheckedInLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, at time.Time) *domain.Lesson {
	tb.Helper()
	l := SeedLesson(tb, ctx, tx, "checked-in lesson")
	if err := tx.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", l.ID).
		Update("check_in_at", at).Error; err != nil {
		tb.Fatalf("seed check-in: %v", err)
	}
	l.CheckedInAt = &at
	return l
}

func PtrTime(v time.Time) *time.Time { return &v }
