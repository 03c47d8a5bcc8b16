package store

import (
	"fmt"

	"gorm.io/gorm"

	"insureops/models"
)

func (s *Store) GetEmailArchives(teamID uint, limit int) ([]models.EmailArchive, error) {
	var archives []models.EmailArchive
	err := s.DB.
		Where("team_id = ?", teamID).
		Order("email_date DESC").
		Limit(normalizeLimit(limit)).
		Find(&archives).Error
	return archives, err
}

// CreateEmailArchive persists the archive and its "archive" audit entry in
// one transaction. Archives are never updated afterwards.
func (s *Store) CreateEmailArchive(archive *models.EmailArchive) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(archive).Error; err != nil {
			return err
		}
		return recordActivity(tx, archive.ArchivedBy, archive.TeamID,
			models.ActivityActionArchive, models.EntityTypeEmail, archive.ID,
			fmt.Sprintf("Email archived: %s", archive.Subject))
	})
}

// SearchEmailArchives performs a case-insensitive substring match over
// subject, sender and body, scoped to the team, most recent mail first.
func (s *Store) SearchEmailArchives(teamID uint, query string) ([]models.EmailArchive, error) {
	pattern := "%" + query + "%"
	var archives []models.EmailArchive
	err := s.DB.
		Where("team_id = ?", teamID).
		Where("LOWER(subject) LIKE LOWER(?) OR LOWER(sender) LIKE LOWER(?) OR LOWER(body) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("email_date DESC").
		Find(&archives).Error
	return archives, err
}
