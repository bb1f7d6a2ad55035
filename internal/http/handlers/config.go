package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/http/response"
)

type ConfigHandler struct {
	client config.ClientConfig
}

func NewConfigHandler(client config.ClientConfig) *ConfigHandler {
	return &ConfigHandler{client: client}
}

// GET /api/config
func (h *ConfigHandler) GetClientConfig(c *gin.Context) {
	response.RespondOK(c, h.client)
}
