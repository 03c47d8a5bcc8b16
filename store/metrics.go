package store

import (
	"time"

	"insureops/models"
)

// DashboardMetrics holds the counters shown on the dashboard cards.
// ActiveTasks and PendingReviews both count "pending" rows (tasks and
// documents respectively); they are deliberately kept as separately named
// counters.
type DashboardMetrics struct {
	ActiveTasks    int64 `json:"activeTasks"`
	DocumentsToday int64 `json:"documentsToday"`
	MeetingsToday  int64 `json:"meetingsToday"`
	PendingReviews int64 `json:"pendingReviews"`
}

// localDayWindow returns [start of day, start of next day) in the server's
// local calendar. Day boundaries follow the server clock, not the caller's
// timezone.
func localDayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// GetDashboardMetrics derives the dashboard counters for a team with
// read-only count queries.
func (s *Store) GetDashboardMetrics(teamID uint) (*DashboardMetrics, error) {
	start, end := localDayWindow(time.Now())
	var metrics DashboardMetrics

	if err := s.DB.Model(&models.Task{}).
		Where("team_id = ? AND status = ?", teamID, models.TaskStatusPending).
		Count(&metrics.ActiveTasks).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Document{}).
		Where("team_id = ? AND created_at >= ? AND created_at < ?", teamID, start, end).
		Count(&metrics.DocumentsToday).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Meeting{}).
		Where("team_id = ? AND start_time >= ? AND start_time < ?", teamID, start, end).
		Count(&metrics.MeetingsToday).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Document{}).
		Where("team_id = ? AND status = ?", teamID, models.DocumentStatusPending).
		Count(&metrics.PendingReviews).Error; err != nil {
		return nil, err
	}

	return &metrics, nil
}
