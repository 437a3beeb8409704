package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recurrence is the repeat rule of an event. It is a closed set; anything
// outside it is treated as unknown and produces no occurrences on read.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Defaults back-filled onto records that predate the type/color fields.
const (
	DefaultEventType  = "task"
	DefaultEventColor = "#007BFF"
)

// Event is a calendar entry owned by exactly one user. The stored record
// carries the first start/end pair; recurring events are expanded into
// occurrences at read time and the occurrences share this record's ID.
type Event struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index:idx_events_user_start,priority:1"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"size:1024"`
	StartTime   time.Time  `json:"start_time" gorm:"not null;index:idx_events_user_start,priority:2"`
	EndTime     time.Time  `json:"end_time" gorm:"not null"`
	Type        string     `json:"type" gorm:"size:50"`
	Color       string     `json:"color" gorm:"size:20"`
	Recurrence  Recurrence `json:"recurrence" gorm:"size:20"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// AfterFind back-fills type and color on rows written before those columns
// existed.
func (e *Event) AfterFind(tx *gorm.DB) error {
	e.EnsureDefaults()
	return nil
}

// EnsureDefaults applies the read-time defaults for optional categorization
// fields. Every store driver must call this when deserializing a record.
func (e *Event) EnsureDefaults() {
	if e.Type == "" {
		e.Type = DefaultEventType
	}
	if e.Color == "" {
		e.Color = DefaultEventColor
	}
}
