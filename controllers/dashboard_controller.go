package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"insureops/store"
	"insureops/utils"
)

type DashboardController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewDashboardController(st *store.Store, logger *log.Logger) *DashboardController {
	return &DashboardController{Store: st, Logger: logger}
}

// GetMetrics returns the dashboard counters for the current team.
func (dc *DashboardController) GetMetrics(c *fiber.Ctx) error {
	metrics, err := dc.Store.GetDashboardMetrics(currentTeamID(c))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard metrics", err)
	}
	return c.JSON(metrics)
}

// GetRecentActivity returns the current team's audit trail, most recent
// first.
func (dc *DashboardController) GetRecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	activity, err := dc.Store.GetRecentActivity(currentTeamID(c), limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch recent activity", err)
	}
	return c.JSON(activity)
}
