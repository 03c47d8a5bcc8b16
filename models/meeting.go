package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting statuses.
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
	MeetingStatusCancelled = "cancelled"
)

// Meeting is a team-scoped calendar entry.
type Meeting struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Location    string    `json:"location"`
	MeetingLink string    `json:"meeting_link"`
	Status      string    `gorm:"default:'scheduled'" json:"status"` // scheduled, completed, cancelled

	Organizer string `gorm:"not null;index" json:"organizer"`
	TeamID    uint   `gorm:"not null;index" json:"team_id"` // immutable after creation
}
