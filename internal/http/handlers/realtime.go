package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
)

type RealtimeHandler struct {
	log     *logger.Logger
	socket  *realtime.SocketServer
	metrics *observability.Metrics
}

func NewRealtimeHandler(log *logger.Logger, socket *realtime.SocketServer, metrics *observability.Metrics) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), socket: socket, metrics: metrics}
}

// GET /ws?lesson=<id>
// Without a lesson filter the socket receives every lesson event.
func (h *RealtimeHandler) Socket(c *gin.Context) {
	channels := []string{realtime.ChannelAll}
	if id := strings.TrimSpace(c.Query("lesson")); id != "" {
		channels = []string{realtime.LessonChannel(id)}
	}
	h.metrics.SocketOpened()
	defer h.metrics.SocketClosed()
	if err := h.socket.Serve(c.Writer, c.Request, channels); err != nil {
		h.log.Debug("socket upgrade failed", "error", err)
	}
}
