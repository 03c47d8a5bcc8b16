package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

type MeetingController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewMeetingController(st *store.Store, logger *log.Logger) *MeetingController {
	return &MeetingController{Store: st, Logger: logger}
}

// GetMeetings lists the current team's meetings, latest start first.
func (mc *MeetingController) GetMeetings(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultListLimit)

	meetings, err := mc.Store.GetMeetings(currentTeamID(c), limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meetings", err)
	}
	return c.JSON(meetings)
}

// GetTodaysMeetings lists meetings starting today, earliest first.
func (mc *MeetingController) GetTodaysMeetings(c *fiber.Ctx) error {
	meetings, err := mc.Store.GetTodaysMeetings(currentTeamID(c))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch meetings", err)
	}
	return c.JSON(meetings)
}

// CreateMeeting schedules a meeting in the current team.
func (mc *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	user := actingUser(c)

	var input struct {
		Title       string    `json:"title" validate:"required,max=200"`
		Description string    `json:"description"`
		StartTime   time.Time `json:"start_time" validate:"required"`
		EndTime     time.Time `json:"end_time" validate:"required"`
		Location    string    `json:"location"`
		MeetingLink string    `json:"meeting_link"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	meeting := models.Meeting{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		MeetingLink: input.MeetingLink,
		Status:      models.MeetingStatusScheduled,
		Organizer:   user.ID,
		TeamID:      currentTeamID(c),
	}
	if err := mc.Store.CreateMeeting(&meeting); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create meeting", err)
	}
	return c.JSON(meeting)
}
