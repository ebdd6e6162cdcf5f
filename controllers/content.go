// controllers/content.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UpdateContentInput struct {
	Content json.RawMessage `json:"content" binding:"required"`
}

// GetContent returns one section when ?section= is given, otherwise all
// sections.
func GetContent(c *gin.Context) {
	if section := c.Query("section"); section != "" {
		var content models.WebsiteContent
		if err := config.DB.Where("section = ?", section).First(&content).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Content section not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		c.JSON(http.StatusOK, content)
		return
	}

	var contents []models.WebsiteContent
	if err := config.DB.Order("section ASC").Find(&contents).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve content")
		return
	}
	c.JSON(http.StatusOK, contents)
}

// UpdateContent upserts a section's payload. Known sections are validated
// against their typed shapes before storing.
func UpdateContent(c *gin.Context) {
	section := c.Query("section")
	if section == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "section is required")
		return
	}

	var input UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	content := models.WebsiteContent{
		Section: section,
		Content: datatypes.JSON(input.Content),
	}
	if _, err := content.DecodePayload(); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Content does not match the section's shape")
		return
	}

	var existing models.WebsiteContent
	err := config.DB.Where("section = ?", section).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := config.DB.Create(&content).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create content")
			return
		}
		c.JSON(http.StatusCreated, content)
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	existing.Content = datatypes.JSON(input.Content)
	if err := config.DB.Save(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update content")
		return
	}

	c.JSON(http.StatusOK, existing)
}
