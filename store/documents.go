package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"insureops/models"
)

func (s *Store) GetDocuments(teamID uint, limit int) ([]models.Document, error) {
	var documents []models.Document
	err := s.DB.
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&documents).Error
	return documents, err
}

// CreateDocument persists the document row and its "upload" audit entry in
// one transaction.
func (s *Store) CreateDocument(doc *models.Document) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		return recordActivity(tx, doc.UploadedBy, doc.TeamID,
			models.ActivityActionUpload, models.EntityTypeDocument, doc.ID,
			fmt.Sprintf("Document uploaded: %s", doc.OriginalName))
	})
}

// UpdateDocumentStatus moves a document through its review states and
// records an "update" audit entry for the acting user.
func (s *Store) UpdateDocumentStatus(id uint, status, userID string, teamID uint) (*models.Document, error) {
	var doc models.Document
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&doc).Update("status", status).Error; err != nil {
			return err
		}
		return recordActivity(tx, userID, teamID,
			models.ActivityActionUpdate, models.EntityTypeDocument, doc.ID,
			fmt.Sprintf("Document marked %s: %s", status, doc.OriginalName))
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SearchDocuments performs a case-insensitive substring match over name,
// description and category, scoped to the team. LOWER/LIKE keeps the
// predicate portable between the Postgres production driver and the
// SQLite driver used in tests.
func (s *Store) SearchDocuments(teamID uint, query string) ([]models.Document, error) {
	pattern := "%" + query + "%"
	var documents []models.Document
	err := s.DB.
		Where("team_id = ?", teamID).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&documents).Error
	return documents, err
}
