package middleware

import (
	"github.com/gofiber/fiber/v2"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

// RequireTeam is the tenancy guard: no team, no operation. It rejects
// requests whose user has no current team, re-validates that the user is
// actually a member of that team (team selection itself does not check
// membership), and passes the resolved team ID downstream via locals.
// Every team-scoped route must sit behind this guard; there is no
// row-level enforcement at the store layer.
func RequireTeam(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user == nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve user", nil)
		}
		if user.CurrentTeamID == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "No team selected", nil)
		}

		member, err := st.IsTeamMember(user.ID, *user.CurrentTeamID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify team membership", err)
		}
		if !member {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Not a member of the selected team", nil)
		}

		c.Locals("teamID", *user.CurrentTeamID)
		return c.Next()
	}
}
