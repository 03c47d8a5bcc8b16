package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"insureops/models"
)

func (s *Store) GetTasks(teamID uint, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&tasks).Error
	return tasks, err
}

// GetUserTasks lists tasks assigned to the user within the team.
func (s *Store) GetUserTasks(userID string, teamID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.
		Where("assigned_to = ? AND team_id = ?", userID, teamID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// CreateTask persists the task and its "create" audit entry in one
// transaction.
func (s *Store) CreateTask(task *models.Task) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return recordActivity(tx, task.CreatedBy, task.TeamID,
			models.ActivityActionCreate, models.EntityTypeTask, task.ID,
			fmt.Sprintf("Task created: %s", task.Title))
	})
}

// UpdateTask merges the supplied columns into the task, stamps updated_at
// and records an "update" audit entry. Moving a task to completed also
// stamps completed_at. The id comes from a prior team-scoped listing and
// is not re-checked against the team.
func (s *Store) UpdateTask(id uint, updates map[string]interface{}, userID string, teamID uint) (*models.Task, error) {
	if status, ok := updates["status"]; ok && status == models.TaskStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	var task models.Task
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return err
		}
		return recordActivity(tx, userID, teamID,
			models.ActivityActionUpdate, models.EntityTypeTask, task.ID,
			fmt.Sprintf("Task updated: %s", task.Title))
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
