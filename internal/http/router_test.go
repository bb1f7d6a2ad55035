package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/data/repos"
	"github.com/yungbote/lessonbridge-backend/internal/data/repos/testutil"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
	httpH "github.com/yungbote/lessonbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lessonbridge-backend/internal/http/middleware"
	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
	"github.com/yungbote/lessonbridge-backend/internal/services"
)

type fixture struct {
	engine *gin.Engine
	hub    *realtime.Hub
	lesson *domain.Lesson
}

func newFixture(t *testing.T, secret string) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := t.Context()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	rs := repos.New(db, log)
	hub := realtime.NewHub(log)
	metrics := observability.NewMetrics()

	lessons := services.NewLessonService(db, log, rs.Lesson)
	checkIns := services.NewCheckInService(db, log, nil, rs.Lesson, &services.HubEmitter{Hub: hub})

	engine := NewRouter(RouterConfig{
		Log:             log,
		Metrics:         metrics,
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, secret),
		HealthHandler:   httpH.NewHealthHandler(),
		ConfigHandler:   httpH.NewConfigHandler(config.ClientConfig{APIURL: "http://api.test", SocketURL: "http://socket.test"}),
		LessonHandler:   httpH.NewLessonHandler(lessons, checkIns, metrics),
		RealtimeHandler: httpH.NewRealtimeHandler(log, realtime.NewSocketServer(hub, nil), metrics),
	})
	return fixture{
		engine: engine,
		hub:    hub,
		lesson: testutil.SeedLesson(t, ctx, db, "Geometry"),
	}
}

func (f fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *stdhttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndConfig(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(stdhttp.MethodGet, "/healthcheck", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = f.do(stdhttp.MethodGet, "/api/config", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"apiUrl":"http://api.test","socketUrl":"http://socket.test"}`, rec.Body.String())

	rec = f.do(stdhttp.MethodGet, "/metrics", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "lessonbridge_http_requests_total")
}

func TestGetLesson(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(stdhttp.MethodGet, "/api/lessons/"+f.lesson.ID, "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var body struct {
		Lesson domain.Lesson `json:"lesson"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, f.lesson.ID, body.Lesson.ID)
	require.Nil(t, body.Lesson.CheckedInAt)

	rec = f.do(stdhttp.MethodGet, "/api/lessons/missing", "", "")
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "lesson_not_found")
}

func TestCheckInEndpoint(t *testing.T) {
	f := newFixture(t, "")
	client := f.hub.NewClient()
	f.hub.AddChannel(client, realtime.LessonChannel(f.lesson.ID))
	defer f.hub.CloseClient(client)

	start := time.Now().UTC().Add(-time.Millisecond)
	rec := f.do(stdhttp.MethodPost, "/api/lessons/"+f.lesson.ID+"/check-in", "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())

	var res services.CheckInResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.AlreadyCheckedIn)
	require.True(t, res.CheckedInAt.After(start))

	select {
	case msg := <-client.Outbound:
		require.Equal(t, realtime.EventLessonCheckedIn, msg.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a realtime message for the check-in")
	}

	rec = f.do(stdhttp.MethodPost, "/api/lessons/"+f.lesson.ID+"/check-in", `{"onlyIfUnset":true}`, "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var again services.CheckInResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	require.True(t, again.AlreadyCheckedIn)
	require.True(t, again.CheckedInAt.Equal(res.CheckedInAt))

	rec = f.do(stdhttp.MethodPost, "/api/lessons/missing/check-in", "", "")
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)

	rec = f.do(stdhttp.MethodPost, "/api/lessons/"+f.lesson.ID+"/check-in", `{"onlyIfUnset":`, "")
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestCheckInRequiresTokenWhenSecretSet(t *testing.T) {
	f := newFixture(t, "s3cret")

	rec := f.do(stdhttp.MethodPost, "/api/lessons/"+f.lesson.ID+"/check-in", "", "")
	require.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "smoke",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	rec = f.do(stdhttp.MethodPost, "/api/lessons/"+f.lesson.ID+"/check-in", "", tok)
	require.Equal(t, stdhttp.StatusOK, rec.Code)

	rec = f.do(stdhttp.MethodGet, "/api/lessons/"+f.lesson.ID, "", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code)
}
