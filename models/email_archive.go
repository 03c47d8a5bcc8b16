package models

import "time"

// EmailArchive is an archived email record. Archives are immutable after
// creation: there is no update or delete path, only create, list and search.
type EmailArchive struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Subject   string `gorm:"not null" json:"subject"`
	Sender    string `gorm:"not null" json:"sender"`
	Recipient string `gorm:"not null" json:"recipient"`
	Body      string `gorm:"type:text" json:"body"`

	Attachments []string `gorm:"serializer:json;type:jsonb" json:"attachments"`
	Tags        []string `gorm:"serializer:json;type:jsonb" json:"tags"`
	Category    string   `json:"category"`

	EmailDate  time.Time `gorm:"not null;index" json:"email_date"`
	ArchivedBy string    `gorm:"not null;index" json:"archived_by"`
	TeamID     uint      `gorm:"not null;index" json:"team_id"` // immutable after creation

	CreatedAt time.Time `json:"created_at"`
}
