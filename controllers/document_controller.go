package controller

import (
	"errors"
	"log"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"insureops/models"
	"insureops/store"
	"insureops/utils"
)

type DocumentController struct {
	Store     *store.Store
	Logger    *log.Logger
	UploadDir string
}

func NewDocumentController(st *store.Store, logger *log.Logger, uploadDir string) *DocumentController {
	return &DocumentController{Store: st, Logger: logger, UploadDir: uploadDir}
}

// GetDocuments lists the current team's documents, most recent first.
func (dc *DocumentController) GetDocuments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultListLimit)

	documents, err := dc.Store.GetDocuments(currentTeamID(c), limit)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch documents", err)
	}
	return c.JSON(documents)
}

// UploadDocuments accepts a multipart form with one or more files plus an
// optional category and description. Every file is validated before any
// file is written or any row created, so a rejected batch leaves no trace.
func (dc *DocumentController) UploadDocuments(c *fiber.Ctx) error {
	user := actingUser(c)
	teamID := currentTeamID(c)

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid multipart form", err)
	}

	files := form.File["files"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No files uploaded", nil)
	}

	for _, fh := range files {
		if err := utils.ValidateUploadFile(fh); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
	}

	category := c.FormValue("category", "General")
	description := c.FormValue("description")

	uploaded := make([]models.Document, 0, len(files))
	for _, fh := range files {
		storedName := utils.StoredFilename(fh.Filename)
		filePath := filepath.Join(dc.UploadDir, storedName)

		if err := c.SaveFile(fh, filePath); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store uploaded file", err)
		}

		doc := models.Document{
			Name:         storedName,
			OriginalName: fh.Filename,
			FilePath:     filePath,
			FileSize:     fh.Size,
			MimeType:     fh.Header.Get("Content-Type"),
			Category:     category,
			Description:  description,
			Status:       models.DocumentStatusPending,
			UploadedBy:   user.ID,
			TeamID:       teamID,
		}
		if err := dc.Store.CreateDocument(&doc); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload documents", err)
		}
		uploaded = append(uploaded, doc)
	}

	return c.JSON(uploaded)
}

// SearchDocuments matches name, description and category case-insensitively
// within the current team. The minimum-length threshold (3 characters) is a
// client convention and is not enforced here.
func (dc *DocumentController) SearchDocuments(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Search query is required", nil)
	}

	documents, err := dc.Store.SearchDocuments(currentTeamID(c), query)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to search documents", err)
	}
	return c.JSON(documents)
}

// UpdateDocumentStatus moves a document through its review states.
func (dc *DocumentController) UpdateDocumentStatus(c *fiber.Ctx) error {
	id := utils.ParseUint(c.Params("id"))
	if id == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid document ID", nil)
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	doc, err := dc.Store.UpdateDocumentStatus(id, input.Status, actingUser(c).ID, currentTeamID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Document not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update document", err)
	}
	return c.JSON(doc)
}
