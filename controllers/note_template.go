// controllers/note_template.go
package controllers

import (
	"errors"
	"net/http"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateNoteTemplateInput struct {
	Name      string   `json:"name" binding:"required"`
	Category  string   `json:"category"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags"`
	SortOrder int      `json:"sortOrder"`
}

type UpdateNoteTemplateInput struct {
	Name      *string   `json:"name"`
	Category  *string   `json:"category"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
	IsActive  *bool     `json:"isActive"`
	SortOrder *int      `json:"sortOrder"`
}

// GetNoteTemplates lists templates. By default only active ones are returned,
// optionally filtered by category; pass all=true for the admin view.
func GetNoteTemplates(c *gin.Context) {
	query := config.DB.Order("sort_order ASC, name ASC")
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var templates []models.NoteTemplate
	if err := query.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetNoteTemplate retrieves a specific template by ID
func GetNoteTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var template models.NoteTemplate
	if err := config.DB.First(&template, "id = ?", templateUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// CreateNoteTemplate creates a new canned-text template
func CreateNoteTemplate(c *gin.Context) {
	var input CreateNoteTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.NoteTemplate{
		Name:      input.Name,
		Category:  input.Category,
		Content:   input.Content,
		Tags:      models.StringList(input.Tags),
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if template.Tags == nil {
		template.Tags = models.StringList{}
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// UpdateNoteTemplate updates an existing template.
func UpdateNoteTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateNoteTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.NoteTemplate
	if err := config.DB.First(&template, "id = ?", templateUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.Category != nil {
		template.Category = *input.Category
	}
	if input.Content != nil {
		template.Content = *input.Content
	}
	if input.Tags != nil {
		template.Tags = models.StringList(*input.Tags)
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		template.SortOrder = *input.SortOrder
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteNoteTemplate removes a template. Communications created from it keep
// their copied content; there is no back-reference to cascade.
func DeleteNoteTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	result := config.DB.Where("id = ?", templateUUID).Delete(&models.NoteTemplate{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
