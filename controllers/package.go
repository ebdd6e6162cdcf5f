// controllers/package.go
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

// CreatePackageInput defines the expected JSON structure for creating a package
type CreatePackageInput struct {
	Name               string  `json:"name" binding:"required"`
	Description        string  `json:"description" binding:"required"`
	Duration           string  `json:"duration" binding:"required"`
	BasePrice          float64 `json:"basePrice" binding:"required,min=0"`
	DiscountPercentage float64 `json:"discountPercentage" binding:"min=0,max=100"`
	DiscountLabel      string  `json:"discountLabel"`
	Category           string  `json:"category" binding:"required,oneof=standard specialty"`
	HasAddons          bool    `json:"hasAddons"`
	SortOrder          int     `json:"sortOrder"`
}

// UpdatePackageInput defines the expected JSON structure for updating a package
type UpdatePackageInput struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	Duration           *string  `json:"duration"`
	BasePrice          *float64 `json:"basePrice" binding:"omitempty,min=0"`
	DiscountPercentage *float64 `json:"discountPercentage" binding:"omitempty,min=0,max=100"`
	DiscountLabel      *string  `json:"discountLabel"`
	Category           *string  `json:"category" binding:"omitempty,oneof=standard specialty"`
	HasAddons          *bool    `json:"hasAddons"`
	IsActive           *bool    `json:"isActive"`
	SortOrder          *int     `json:"sortOrder"`
}

// GetPackages retrieves all packages, sorted by sort order
func GetPackages(c *gin.Context) {
	var packages []models.Package
	query := config.DB.Order("sort_order ASC, name ASC")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

// GetActivePackages retrieves the packages shown on the public site
func GetActivePackages(c *gin.Context) {
	var packages []models.Package
	if err := config.DB.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

// GetPackage retrieves a specific package by ID
func GetPackage(c *gin.Context) {
	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var pkg models.Package
	if err := config.DB.First(&pkg, "id = ?", packageUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// CreatePackage creates a new package
func CreatePackage(c *gin.Context) {
	var input CreatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pkg := models.Package{
		Name:               input.Name,
		Description:        input.Description,
		Duration:           input.Duration,
		BasePrice:          input.BasePrice,
		DiscountPercentage: input.DiscountPercentage,
		DiscountLabel:      input.DiscountLabel,
		Category:           input.Category,
		HasAddons:          input.HasAddons,
		IsActive:           true,
		SortOrder:          input.SortOrder,
	}

	if err := config.DB.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create package")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// UpdatePackage updates an existing package; currentPrice is recomputed
// whenever basePrice or discountPercentage change
func UpdatePackage(c *gin.Context) {
	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pkg models.Package
	if err := config.DB.First(&pkg, "id = ?", packageUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.Duration != nil {
		pkg.Duration = *input.Duration
	}
	if input.BasePrice != nil {
		pkg.BasePrice = *input.BasePrice
	}
	if input.DiscountPercentage != nil {
		pkg.DiscountPercentage = *input.DiscountPercentage
	}
	if input.DiscountLabel != nil {
		pkg.DiscountLabel = *input.DiscountLabel
	}
	if input.Category != nil {
		pkg.Category = *input.Category
	}
	if input.HasAddons != nil {
		pkg.HasAddons = *input.HasAddons
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		pkg.SortOrder = *input.SortOrder
	}

	if err := config.DB.Save(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage soft deletes a package. Historical appointments keep their
// price snapshots, so deletion is unconditional.
func DeletePackage(c *gin.Context) {
	packageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	result := config.DB.Where("id = ?", packageUUID).Delete(&models.Package{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
