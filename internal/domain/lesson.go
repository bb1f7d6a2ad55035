package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is keyed by an opaque string id assigned by whoever scheduled it;
// the database never generates it.
type Lesson struct {
	ID    string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Title string `gorm:"column:title;not null;default:''" json:"title"`

	StartsAt *time.Time `gorm:"column:starts_at" json:"startsAt,omitempty"`
	EndsAt   *time.Time `gorm:"column:ends_at" json:"endsAt,omitempty"`

	CheckedInAt *time.Time `gorm:"column:check_in_at;index" json:"checkInAt"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string { return "lesson" }

func (l *Lesson) IsCheckedIn() bool { return l != nil && l.CheckedInAt != nil }

// LessonEvent is the payload fanned out to realtime subscribers.
type LessonEvent struct {
	Type        string    `json:"type"`
	LessonID    string    `json:"lessonId"`
	CheckedInAt time.Time `json:"checkInAt"`
}

const EventLessonCheckedIn = "lesson.checked_in"
