// controllers/addon.go
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

type CreateAddonInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	SortOrder   int     `json:"sortOrder"`
}

type UpdateAddonInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive"`
	SortOrder   *int     `json:"sortOrder"`
}

// GetAddons retrieves all add-on services, sorted by sort order
func GetAddons(c *gin.Context) {
	var addons []models.AddOnService
	query := config.DB.Order("sort_order ASC, name ASC")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&addons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve addons")
		return
	}

	c.JSON(http.StatusOK, addons)
}

// GetActiveAddons retrieves the add-ons shown on the public site
func GetActiveAddons(c *gin.Context) {
	var addons []models.AddOnService
	if err := config.DB.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&addons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve addons")
		return
	}

	c.JSON(http.StatusOK, addons)
}

// CreateAddon creates a new add-on service
func CreateAddon(c *gin.Context) {
	var input CreateAddonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	addon := models.AddOnService{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}

	if err := config.DB.Create(&addon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create addon")
		return
	}

	c.JSON(http.StatusCreated, addon)
}

// UpdateAddon updates an existing add-on service
func UpdateAddon(c *gin.Context) {
	addonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid addon ID format")
		return
	}

	var input UpdateAddonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var addon models.AddOnService
	if err := config.DB.First(&addon, "id = ?", addonUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Addon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		addon.Name = *input.Name
	}
	if input.Description != nil {
		addon.Description = *input.Description
	}
	if input.Price != nil {
		addon.Price = *input.Price
	}
	if input.IsActive != nil {
		addon.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		addon.SortOrder = *input.SortOrder
	}

	if err := config.DB.Save(&addon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update addon")
		return
	}

	c.JSON(http.StatusOK, addon)
}

// DeleteAddon soft deletes an add-on service
func DeleteAddon(c *gin.Context) {
	addonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid addon ID format")
		return
	}

	result := config.DB.Where("id = ?", addonUUID).Delete(&models.AddOnService{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete addon")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Addon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Addon deleted successfully"})
}
