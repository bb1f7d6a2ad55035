package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yungbote/lessonbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
	"github.com/yungbote/lessonbridge-backend/internal/services"
)

func sqliteEnv() envutil.LookupFunc {
	return envutil.FromMap(map[string]string{
		"DB_DRIVER":   "sqlite",
		"SQLITE_PATH": "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		"PORT":        "0",
	})
}

func TestNewWiresAndCloseReleasesDB(t *testing.T) {
	ctx := t.Context()
	a, err := New(ctx, Options{Lookup: sqliteEnv(), Log: testutil.Logger(t)})
	require.NoError(t, err)

	require.NotNil(t, a.Server)
	require.Nil(t, a.Clients.Bus)
	_, isHub := a.Services.Emitter.(*services.HubEmitter)
	require.True(t, isHub)

	lesson := testutil.SeedLesson(t, ctx, a.DB, "Wired")
	res, err := a.Services.CheckIn.CheckIn(ctx, nil, lesson.ID, services.CheckInOptions{})
	require.NoError(t, err)
	require.NotNil(t, res.Lesson.CheckedInAt)

	sqlDB, err := a.DB.DB()
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.Error(t, sqlDB.PingContext(ctx))
	require.NoError(t, a.Close())
}

func TestCloseAfterFailedOperationStillReleasesDB(t *testing.T) {
	ctx := t.Context()
	a, err := New(ctx, Options{Lookup: sqliteEnv(), Log: testutil.Logger(t)})
	require.NoError(t, err)

	_, err = a.Services.CheckIn.CheckIn(ctx, nil, "does-not-exist", services.CheckInOptions{})
	require.ErrorIs(t, err, services.ErrLessonNotFound)

	sqlDB, err := a.DB.DB()
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.Error(t, sqlDB.PingContext(ctx))
}

func TestNewFailsForUnreachableStore(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	a, err := New(t.Context(), Options{
		Lookup: envutil.FromMap(map[string]string{
			"DB_DRIVER":     "postgres",
			"POSTGRES_HOST": "127.0.0.1",
			"POSTGRES_PORT": "1",
		}),
		Log: testutil.Logger(t),
	})
	require.Error(t, err)
	require.Nil(t, a)

	var nilApp *App
	require.NoError(t, nilApp.Close())
}

func TestNewFailsForUnreachableRedis(t *testing.T) {
	lookup := sqliteEnv()
	env := func(key string) (string, bool) {
		if key == "REDIS_ADDR" {
			return "127.0.0.1:1", true
		}
		return lookup(key)
	}
	a, err := New(t.Context(), Options{Lookup: env, Log: testutil.Logger(t)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
	require.Nil(t, a)
}

func TestRunRealtimeClosesSocketsOnShutdown(t *testing.T) {
	a, err := New(t.Context(), Options{Lookup: sqliteEnv(), Log: testutil.Logger(t)})
	require.NoError(t, err)
	defer a.Close()

	client := a.Hub.NewClient()
	a.Hub.AddChannel(client, realtime.ChannelAll)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- a.RunRealtime(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunRealtime did not return after cancel")
	}
	_, ok := <-client.Outbound
	require.False(t, ok)
	require.Zero(t, a.Hub.Subscribers(realtime.ChannelAll))
}
