package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/lessonbridge-backend/internal/platform/apierr"
)

func respond(t *testing.T, err error) (int, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, err)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestRespondAPIErrorClassified(t *testing.T) {
	err := fmt.Errorf("load: %w", apierr.NotFound("lesson_not_found", errors.New("lesson not found")))
	status, env := respond(t, err)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "lesson_not_found", env.Error.Code)
	require.Equal(t, "lesson not found", env.Error.Message)
}

func TestRespondAPIErrorHidesInternalDetail(t *testing.T) {
	status, env := respond(t, errors.New("pq: password authentication failed"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal", env.Error.Code)
	require.Equal(t, "unknown error", env.Error.Message)
}
