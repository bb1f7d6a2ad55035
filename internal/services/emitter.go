package services

import (
	"context"

	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
	"github.com/yungbote/lessonbridge-backend/internal/realtime/bus"
)

// LessonEmitter announces lesson events to realtime subscribers.
type LessonEmitter interface {
	Emit(ctx context.Context, evt domain.LessonEvent) error
}

func lessonMessages(evt domain.LessonEvent) []realtime.Message {
	return []realtime.Message{
		{Channel: realtime.ChannelAll, Event: realtime.Event(evt.Type), Data: evt},
		{Channel: realtime.LessonChannel(evt.LessonID), Event: realtime.Event(evt.Type), Data: evt},
	}
}

// HubEmitter delivers to sockets on this instance only.
type HubEmitter struct{ Hub *realtime.Hub }

func (e *HubEmitter) Emit(ctx context.Context, evt domain.LessonEvent) error {
	for _, msg := range lessonMessages(evt) {
		e.Hub.Broadcast(msg)
	}
	return nil
}

// BusEmitter publishes through the bus; every instance's forwarder, this one
// included, rebroadcasts to its own hub.
type BusEmitter struct{ Bus bus.Bus }

func (e *BusEmitter) Emit(ctx context.Context, evt domain.LessonEvent) error {
	for _, msg := range lessonMessages(evt) {
		if err := e.Bus.Publish(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, domain.LessonEvent) error { return nil }
