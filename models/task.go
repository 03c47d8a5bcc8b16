package models

import (
	"time"

	"gorm.io/gorm"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is a team-scoped work item.
type Task struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Priority    string `gorm:"default:'medium'" json:"priority"` // low, medium, high
	Status      string `gorm:"default:'pending'" json:"status"`  // pending, in_progress, completed

	AssignedTo *string `gorm:"index" json:"assigned_to"`
	CreatedBy  string  `gorm:"not null;index" json:"created_by"`
	TeamID     uint    `gorm:"not null;index" json:"team_id"` // immutable after creation

	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
}
