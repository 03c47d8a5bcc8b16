package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"insureops/store"
)

type AuthController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewAuthController(st *store.Store, logger *log.Logger) *AuthController {
	return &AuthController{Store: st, Logger: logger}
}

// GetCurrentUser returns the acting user as resolved by the identity
// middleware.
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	return c.JSON(actingUser(c))
}
