package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/lessonbridge-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	attrLessonID  = attribute.Key("lesson.id")
	attrRequestID = attribute.Key("http.request_id")
)

// AttachTraceContext puts trace, request and lesson ids on the request
// context and on the active span. The lesson id comes from the :id route
// param or the ?lesson= query used by /ws.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span := trace.SpanFromContext(ctx)

		td := &ctxutil.TraceData{
			RequestID: firstNonEmpty(c.GetHeader(headerRequestID), uuid.NewString()),
			LessonID:  firstNonEmpty(c.Param("id"), c.Query("lesson")),
		}
		if sc := span.SpanContext(); sc.HasTraceID() {
			td.TraceID = sc.TraceID().String()
		}
		td.TraceID = firstNonEmpty(td.TraceID, c.GetHeader(headerTraceID), uuid.NewString())

		span.SetAttributes(attrRequestID.String(td.RequestID))
		if td.LessonID != "" {
			span.SetAttributes(attrLessonID.String(td.LessonID))
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, td))
		c.Header(headerTraceID, td.TraceID)
		c.Header(headerRequestID, td.RequestID)
		c.Next()
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
