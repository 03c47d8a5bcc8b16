package controller

import (
	"log"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

type EmailArchiveController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewEmailArchiveController(st *store.Store, logger *log.Logger) *EmailArchiveController {
	return &EmailArchiveController{Store: st, Logger: logger}
}

// GetEmailArchives lists the current team's archived mail, newest mail
// date first.
func (ec *EmailArchiveController) GetEmailArchives(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultListLimit)

	archives, err := ec.Store.GetEmailArchives(currentTeamID(c), limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch email archives", err)
	}
	return c.JSON(archives)
}

// CreateEmailArchive files an email into the current team's archive.
// Archives are immutable once created.
func (ec *EmailArchiveController) CreateEmailArchive(c *fiber.Ctx) error {
	user := actingUser(c)

	var input struct {
		Subject     string    `json:"subject" validate:"required,max=500"`
		Sender      string    `json:"sender" validate:"required"`
		Recipient   string    `json:"recipient" validate:"required"`
		Body        string    `json:"body"`
		Attachments []string  `json:"attachments"`
		Tags        []string  `json:"tags"`
		Category    string    `json:"category"`
		EmailDate   time.Time `json:"email_date" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	if err := checkmail.ValidateFormat(input.Sender); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "sender must be a valid email address", nil)
	}
	if err := checkmail.ValidateFormat(input.Recipient); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "recipient must be a valid email address", nil)
	}

	archive := models.EmailArchive{
		Subject:     input.Subject,
		Sender:      input.Sender,
		Recipient:   input.Recipient,
		Body:        input.Body,
		Attachments: input.Attachments,
		Tags:        input.Tags,
		Category:    input.Category,
		EmailDate:   input.EmailDate,
		ArchivedBy:  user.ID,
		TeamID:      currentTeamID(c),
	}
	if err := ec.Store.CreateEmailArchive(&archive); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to archive email", err)
	}
	return c.JSON(archive)
}

// SearchEmailArchives matches subject, sender and body case-insensitively
// within the current team.
func (ec *EmailArchiveController) SearchEmailArchives(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query is required", nil)
	}

	archives, err := ec.Store.SearchEmailArchives(currentTeamID(c), query)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search email archives", err)
	}
	return c.JSON(archives)
}
