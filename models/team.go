package models

import "gorm.io/gorm"

// Team is the tenant boundary: every business entity belongs to exactly
// one team, and all reads/writes are scoped to the caller's current team.
type Team struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	gorm.Model
	UserID string `gorm:"not null;index" json:"user_id"`
	TeamID uint   `gorm:"not null;index" json:"team_id"`
	Role   string `gorm:"default:'member'" json:"role"` // owner, admin, member

	// Relations
	Team Team `json:"-"`
	User User `json:"-"`
}
