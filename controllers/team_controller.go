package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"insureops/store"
	"insureops/utils"
)

type TeamController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTeamController(st *store.Store, logger *log.Logger) *TeamController {
	return &TeamController{Store: st, Logger: logger}
}

// GetTeams lists the acting user's teams, ordered by name.
func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	user := actingUser(c)

	teams, err := tc.Store.GetUserTeams(user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch teams", err)
	}
	return c.JSON(teams)
}

// SelectTeam overwrites the user's current team pointer. Membership is not
// checked here; the tenancy guard validates it on every scoped request.
func (tc *TeamController) SelectTeam(c *fiber.Ctx) error {
	user := actingUser(c)

	teamID := utils.ParseUint(c.Params("teamId"))
	if teamID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid team ID", nil)
	}

	if err := tc.Store.UpdateUserCurrentTeam(user.ID, teamID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to select team", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Setup bootstraps a brand-new user with the four default teams. Calling
// it again is a no-op.
func (tc *TeamController) Setup(c *fiber.Ctx) error {
	user := actingUser(c)

	teams, created, err := tc.Store.SetupDefaultTeams(user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to set up user", err)
	}
	if !created {
		return c.JSON(fiber.Map{"message": "User already has teams"})
	}

	tc.Logger.Printf("bootstrapped %d default teams for user %s", len(teams), user.ID)
	return c.JSON(fiber.Map{"teams": teams})
}
