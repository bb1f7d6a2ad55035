package realtime

import "strings"

type Event string

const (
	EventLessonCheckedIn Event = "lesson.checked_in"
)

// ChannelAll receives every lesson event.
const ChannelAll = "lessons"

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// LessonChannel is the per-lesson channel name.
func LessonChannel(lessonID string) string {
	return "lesson:" + strings.TrimSpace(lessonID)
}
