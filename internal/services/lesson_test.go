package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos"
	"github.com/yungbote/lessonbridge-backend/internal/data/repos/testutil"
)

func TestGetLesson(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewLessonService(db, log, repos.New(db, log).Lesson)

	lesson := testutil.SeedLesson(t, ctx, db, "History")
	got, err := svc.GetLesson(ctx, nil, " "+lesson.ID+" ")
	require.NoError(t, err)
	require.Equal(t, lesson.ID, got.ID)

	_, err = svc.GetLesson(ctx, nil, "nope")
	require.ErrorIs(t, err, ErrLessonNotFound)

	_, err = svc.GetLesson(ctx, nil, "")
	require.ErrorIs(t, err, ErrInvalidLessonID)
}
