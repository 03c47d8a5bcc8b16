package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"insureops/models"
)

func (s *Store) GetMeetings(teamID uint, limit int) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.DB.
		Where("team_id = ?", teamID).
		Order("start_time DESC").
		Limit(normalizeLimit(limit)).
		Find(&meetings).Error
	return meetings, err
}

// GetTodaysMeetings lists meetings starting within the server's local
// calendar day, earliest first.
func (s *Store) GetTodaysMeetings(teamID uint) ([]models.Meeting, error) {
	start, end := localDayWindow(time.Now())
	var meetings []models.Meeting
	err := s.DB.
		Where("team_id = ? AND start_time >= ? AND start_time < ?", teamID, start, end).
		Order("start_time").
		Find(&meetings).Error
	return meetings, err
}

// CreateMeeting persists the meeting and its "create" audit entry in one
// transaction.
func (s *Store) CreateMeeting(meeting *models.Meeting) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}
		return recordActivity(tx, meeting.Organizer, meeting.TeamID,
			models.ActivityActionCreate, models.EntityTypeMeeting, meeting.ID,
			fmt.Sprintf("Meeting scheduled: %s", meeting.Title))
	})
}
