package models

import "time"

// User represents a user account in the system. The ID is the subject
// string assigned by the identity provider rather than a database serial,
// so a real provider can later replace the stub without rewriting keys.
type User struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	Email           string  `gorm:"uniqueIndex" json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`

	// CurrentTeamID is the team the user is presently operating in.
	// Nil until setup has run; every team-scoped request is gated on it.
	CurrentTeamID *uint  `json:"current_team_id"`
	Role          string `gorm:"default:'member'" json:"role"` // admin, member

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}
