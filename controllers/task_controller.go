package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

type TaskController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewTaskController(st *store.Store, logger *log.Logger) *TaskController {
	return &TaskController{Store: st, Logger: logger}
}

// GetTasks lists the current team's tasks, most recent first.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultListLimit)

	tasks, err := tc.Store.GetTasks(currentTeamID(c), limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}
	return c.JSON(tasks)
}

// GetMyTasks lists tasks assigned to the acting user in the current team.
func (tc *TaskController) GetMyTasks(c *fiber.Ctx) error {
	tasks, err := tc.Store.GetUserTasks(actingUser(c).ID, currentTeamID(c))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}
	return c.JSON(tasks)
}

// CreateTask creates a task in the current team.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := actingUser(c)

	var input struct {
		Title       string     `json:"title" validate:"required,max=200"`
		Description string     `json:"description"`
		Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
		Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
		AssignedTo  *string    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		CreatedBy:   user.ID,
		TeamID:      currentTeamID(c),
	}
	if err := tc.Store.CreateTask(&task); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}
	return c.JSON(task)
}

// UpdateTask merges the supplied fields into an existing task.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	id := utils.ParseUint(c.Params("id"))
	if id == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid task ID", nil)
	}

	var input struct {
		Title       *string    `json:"title" validate:"omitempty,max=200"`
		Description *string    `json:"description"`
		Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
		Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
		AssignedTo  *string    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.AssignedTo != nil {
		updates["assigned_to"] = *input.AssignedTo
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", nil)
	}

	task, err := tc.Store.UpdateTask(id, updates, actingUser(c).ID, currentTeamID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", err)
	}
	return c.JSON(task)
}
