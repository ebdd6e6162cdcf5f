// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateBusinessSettingsInput struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	AddressStreet *string  `json:"addressStreet"`
	AddressCity   *string  `json:"addressCity"`
	AddressState  *string  `json:"addressState"`
	AddressZip    *string  `json:"addressZip"`
	Timezone      *string  `json:"timezone"`
	TaxRate       *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
	Currency      *string  `json:"currency"`
}

// loadBusinessSettings fetches the singleton row, creating it on first use.
func loadBusinessSettings(db *gorm.DB) (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	err := db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BusinessSettings{ID: 1}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetBusinessSettings returns the studio profile
func GetBusinessSettings(c *gin.Context) {
	settings, err := loadBusinessSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateBusinessSettings updates the studio profile. Phone is stored as raw
// digits with a formatted display alongside; the address parts are joined into
// addressFull.
func UpdateBusinessSettings(c *gin.Context) {
	var input UpdateBusinessSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadBusinessSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.Name != nil {
		settings.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		settings.Phone = utils.DigitsOnly(*input.Phone)
		settings.PhoneDisplay = utils.FormatPhoneDisplay(*input.Phone)
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.AddressStreet != nil {
		settings.AddressStreet = *input.AddressStreet
	}
	if input.AddressCity != nil {
		settings.AddressCity = *input.AddressCity
	}
	if input.AddressState != nil {
		settings.AddressState = *input.AddressState
	}
	if input.AddressZip != nil {
		settings.AddressZip = *input.AddressZip
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	if input.Currency != nil {
		settings.Currency = strings.ToUpper(*input.Currency)
	}

	parts := []string{}
	for _, p := range []string{settings.AddressStreet, settings.AddressCity, settings.AddressState, settings.AddressZip} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	settings.AddressFull = strings.Join(parts, ", ")

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
