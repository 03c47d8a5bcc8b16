package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"insureops/models"
)

// defaultTeams are created on first-use bootstrap for a user with no
// memberships. The names are fixed product vocabulary.
var defaultTeams = []models.Team{
	{Name: "Personal Lines", Description: "Personal insurance operations"},
	{Name: "Commercial", Description: "Commercial insurance operations"},
	{Name: "Corporate", Description: "Corporate insurance operations"},
	{Name: "Claims", Description: "Claims processing and management"},
}

func (s *Store) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpsertUser(user *models.User) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(user).Error
}

func (s *Store) GetTeam(id uint) (*models.Team, error) {
	var team models.Team
	if err := s.DB.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *Store) CreateTeam(team *models.Team) error {
	return s.DB.Create(team).Error
}

// GetUserTeams returns the teams the user is a member of, ordered by name.
func (s *Store) GetUserTeams(userID string) ([]models.Team, error) {
	var teams []models.Team
	err := s.DB.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.name").
		Find(&teams).Error
	return teams, err
}

func (s *Store) AddUserToTeam(userID string, teamID uint, role string) error {
	if role == "" {
		role = "member"
	}
	return s.DB.Create(&models.TeamMember{
		UserID: userID,
		TeamID: teamID,
		Role:   role,
	}).Error
}

// IsTeamMember reports whether a membership row exists for (userID, teamID).
func (s *Store) IsTeamMember(userID string, teamID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.TeamMember{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		Count(&count).Error
	return count > 0, err
}

// UpdateUserCurrentTeam overwrites the user's current team pointer.
// Membership is not checked here; the tenancy guard re-validates it on
// every team-scoped request. Team switches produce no activity entry.
func (s *Store) UpdateUserCurrentTeam(userID string, teamID uint) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("current_team_id", teamID).Error
}

// SetupDefaultTeams bootstraps a brand-new user: it creates the four fixed
// teams, adds the user as a member of each and points the current team at
// the first one. It no-ops when the user already has at least one
// membership, so calling it twice yields exactly one set of teams. The
// whole bootstrap runs in a single transaction.
func (s *Store) SetupDefaultTeams(userID string) ([]models.Team, bool, error) {
	var existing int64
	if err := s.DB.Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Count(&existing).Error; err != nil {
		return nil, false, err
	}
	if existing > 0 {
		return nil, false, nil
	}

	created := make([]models.Team, len(defaultTeams))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i, t := range defaultTeams {
			team := t
			if err := tx.Create(&team).Error; err != nil {
				return fmt.Errorf("failed to create team %q: %w", t.Name, err)
			}
			member := models.TeamMember{UserID: userID, TeamID: team.ID, Role: "member"}
			if err := tx.Create(&member).Error; err != nil {
				return fmt.Errorf("failed to add membership for %q: %w", t.Name, err)
			}
			created[i] = team
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("current_team_id", created[0].ID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}
