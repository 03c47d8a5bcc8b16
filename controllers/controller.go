package controller

import (
	"github.com/gofiber/fiber/v2"

	"insureops/models"
)

// actingUser returns the user placed in locals by the identity middleware.
func actingUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

// currentTeamID returns the team ID placed in locals by the tenancy guard.
func currentTeamID(c *fiber.Ctx) uint {
	return c.Locals("teamID").(uint)
}
