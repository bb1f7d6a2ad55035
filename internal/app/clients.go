package app

import (
	"context"
	"fmt"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
	"github.com/yungbote/lessonbridge-backend/internal/realtime/bus"
)

type Clients struct {
	// Bus is nil when REDIS_ADDR is unset; events then stay on this instance.
	Bus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger, cfg config.ServerConfig) (Clients, error) {
	log.Info("Wiring clients...")

	var b bus.Bus
	if cfg.Redis.Addr != "" {
		rb, err := bus.NewRedisBus(ctx, log, cfg.Redis.Addr, cfg.Redis.Channel)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis bus: %w", err)
		}
		b = rb
	}
	return Clients{Bus: b}, nil
}

func (c *Clients) Close() error {
	if c == nil || c.Bus == nil {
		return nil
	}
	err := c.Bus.Close()
	c.Bus = nil
	return err
}
