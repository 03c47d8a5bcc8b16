package models

import "gorm.io/gorm"

// Document statuses.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

// Document is an uploaded file record. The binary lives on disk at
// FilePath; the row and the file are kept consistent by the application,
// there is no referential integrity between the two stores.
type Document struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`          // stored filename
	OriginalName string `gorm:"not null" json:"original_name"` // name as uploaded
	FilePath     string `gorm:"not null" json:"file_path"`
	FileSize     int64  `gorm:"not null" json:"file_size"`
	MimeType     string `gorm:"not null" json:"mime_type"`
	Category     string `gorm:"not null" json:"category"`
	Description  string `json:"description"`
	Status       string `gorm:"default:'pending'" json:"status"` // pending, approved, rejected

	UploadedBy string `gorm:"not null;index" json:"uploaded_by"`
	TeamID     uint   `gorm:"not null;index" json:"team_id"` // immutable after creation
}
