package store

import (
	"gorm.io/gorm"

	"insureops/models"
)

// recordActivity appends one audit entry inside the caller's transaction.
// Running it on the same tx as the entity write means a failed audit
// append rolls the whole mutation back: every committed mutation has
// exactly one audit row.
func recordActivity(tx *gorm.DB, userID string, teamID uint, action, entityType string, entityID uint, description string) error {
	return tx.Create(&models.ActivityLog{
		UserID:      userID,
		TeamID:      teamID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    &entityID,
		Description: description,
	}).Error
}

// GetRecentActivity lists a team's audit trail, most recent first.
func (s *Store) GetRecentActivity(teamID uint, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.ActivityLog
	err := s.DB.
		Where("team_id = ?", teamID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
