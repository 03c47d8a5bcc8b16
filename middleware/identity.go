package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

// IdentityResolver resolves the acting user for a request. It is an
// injected capability: the stub below can be swapped for a real identity
// provider without touching the tenancy or audit code.
type IdentityResolver interface {
	ResolveActingUser(c *fiber.Ctx) (*models.User, error)
}

// SystemUserID is the fixed identity the stub resolver provisions.
const SystemUserID = "system-user"

// StubIdentityResolver auto-provisions a single system user on first
// request, together with a default team and an admin membership. It stands
// in for a real identity provider.
type StubIdentityResolver struct {
	Store *store.Store
}

func NewStubIdentityResolver(st *store.Store) *StubIdentityResolver {
	return &StubIdentityResolver{Store: st}
}

func (r *StubIdentityResolver) ResolveActingUser(_ *fiber.Ctx) (*models.User, error) {
	user, err := r.Store.GetUser(SystemUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	team := models.Team{
		Name:        "Default Team",
		Description: "Auto-generated default team",
	}
	if err := r.Store.CreateTeam(&team); err != nil {
		return nil, fmt.Errorf("failed to create default team: %w", err)
	}

	user = &models.User{
		ID:            SystemUserID,
		Email:         "admin@system.local",
		FirstName:     "System",
		LastName:      "Admin",
		Role:          "admin",
		CurrentTeamID: &team.ID,
	}
	if err := r.Store.UpsertUser(user); err != nil {
		return nil, fmt.Errorf("failed to provision system user: %w", err)
	}
	if err := r.Store.AddUserToTeam(user.ID, team.ID, "admin"); err != nil {
		return nil, fmt.Errorf("failed to add system user to default team: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"team_id": team.ID,
	}).Info("provisioned stub system user")

	return user, nil
}

// Identity resolves the acting user and stores it in request locals.
func Identity(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.ResolveActingUser(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve user", err)
		}
		c.Locals("user", user)
		return c.Next()
	}
}
