package bus

import (
	"context"

	"github.com/yungbote/lessonbridge-backend/internal/realtime"
)

// Bus carries realtime messages between server instances.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}
