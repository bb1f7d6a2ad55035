package learning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
)

func TestLessonRepo(t *testing.T) {
	tx := testutil.DB(t)
	ctx := context.Background()
	repo := NewLessonRepo(tx, testutil.Logger(t))

	l1 := &domain.Lesson{
		ID:       "cl_lesson_repo_1",
		Title:    "Algebra",
		Metadata: datatypes.JSON([]byte("{}")),
	}
	_, err := repo.Create(ctx, tx, []*domain.Lesson{l1})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, tx, l1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Algebra", got.Title)
	require.Nil(t, got.CheckedInAt)

	missing, err := repo.GetByID(ctx, tx, "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, missing)

	rows, err := repo.GetByIDs(ctx, tx, []string{l1.ID, "does-not-exist"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	empty, err := repo.Create(ctx, tx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLessonRepoSetCheckInAt(t *testing.T) {
	tx := testutil.DB(t)
	ctx := context.Background()
	repo := NewLessonRepo(tx, testutil.Logger(t))

	lesson := testutil.SeedLesson(t, ctx, tx, "check-in")
	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	n, err := repo.SetCheckInAt(ctx, tx, lesson.ID, at, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, tx, lesson.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CheckedInAt)
	require.True(t, got.CheckedInAt.Equal(at), "got %s want %s", got.CheckedInAt, at)

	later := at.Add(time.Hour)
	n, err = repo.SetCheckInAt(ctx, tx, lesson.ID, later, true)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	got, err = repo.GetByID(ctx, tx, lesson.ID)
	require.NoError(t, err)
	require.True(t, got.CheckedInAt.Equal(at))

	n, err = repo.SetCheckInAt(ctx, tx, lesson.ID, later, false)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = repo.SetCheckInAt(ctx, tx, "does-not-exist", later, false)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	n, err = repo.ClearCheckInAt(ctx, tx, lesson.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	got, err = repo.GetByID(ctx, tx, lesson.ID)
	require.NoError(t, err)
	require.Nil(t, got.CheckedInAt)
}

func TestLessonRepoIgnoresSoftDeleted(t *testing.T) {
	tx := testutil.DB(t)
	ctx := context.Background()
	repo := NewLessonRepo(tx, testutil.Logger(t))

	lesson := testutil.SeedLesson(t, ctx, tx, "gone")
	require.NoError(t, tx.WithContext(ctx).Delete(&domain.Lesson{}, "id = ?", lesson.ID).Error)

	n, err := repo.SetCheckInAt(ctx, tx, lesson.ID, time.Now().UTC(), false)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	got, err := repo.GetByID(ctx, tx, lesson.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
