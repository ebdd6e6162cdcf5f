// controllers/availability.go
package controllers

import (
	"errors"
	"net/http"
	"sort"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HoursInput updates the schedule for one weekday.
type HoursInput struct {
	Weekday        *int    `json:"weekday" binding:"required,min=0,max=6"`
	IsOpen         *bool   `json:"isOpen"`
	OpenTime       *string `json:"openTime"`
	CloseTime      *string `json:"closeTime"`
	BreakStartTime *string `json:"breakStartTime"`
	BreakEndTime   *string `json:"breakEndTime"`
}

var defaultHours = []models.BusinessHours{
	{Weekday: 0, IsOpen: false},
	{Weekday: 1, IsOpen: true, OpenTime: "9:00 AM", CloseTime: "6:00 PM"},
	{Weekday: 2, IsOpen: true, OpenTime: "9:00 AM", CloseTime: "6:00 PM"},
	{Weekday: 3, IsOpen: true, OpenTime: "9:00 AM", CloseTime: "6:00 PM"},
	{Weekday: 4, IsOpen: true, OpenTime: "9:00 AM", CloseTime: "8:00 PM"},
	{Weekday: 5, IsOpen: true, OpenTime: "9:00 AM", CloseTime: "8:00 PM"},
	{Weekday: 6, IsOpen: true, OpenTime: "10:00 AM", CloseTime: "4:00 PM"},
}

// loadBusinessHours returns the 7 weekday rows, seeding defaults on first use.
func loadBusinessHours(db *gorm.DB) ([]models.BusinessHours, error) {
	var hours []models.BusinessHours
	if err := db.Find(&hours).Error; err != nil {
		return nil, err
	}
	if len(hours) < 7 {
		present := make(map[int]bool)
		for _, h := range hours {
			present[h.Weekday] = true
		}
		for _, h := range defaultHours {
			if !present[h.Weekday] {
				if err := db.Create(&h).Error; err != nil {
					return nil, err
				}
				hours = append(hours, h)
			}
		}
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Weekday < hours[j].Weekday })
	return hours, nil
}

// GetBusinessHours returns the weekly schedule
func GetBusinessHours(c *gin.Context) {
	hours, err := loadBusinessHours(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// UpdateBusinessHours updates one weekday's schedule
func UpdateBusinessHours(c *gin.Context) {
	var input HoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, t := range []*string{input.OpenTime, input.CloseTime, input.BreakStartTime, input.BreakEndTime} {
		if t != nil && *t != "" {
			minutes, err := utils.ClockMinutes(*t)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected e.g. 9:00 AM")
				return
			}
			*t = utils.FormatClock(minutes)
		}
	}

	if _, err := loadBusinessHours(config.DB); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business hours")
		return
	}

	var hours models.BusinessHours
	if err := config.DB.First(&hours, "weekday = ?", *input.Weekday).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.IsOpen != nil {
		hours.IsOpen = *input.IsOpen
	}
	if input.OpenTime != nil {
		hours.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		hours.CloseTime = *input.CloseTime
	}
	if input.BreakStartTime != nil {
		hours.BreakStartTime = *input.BreakStartTime
	}
	if input.BreakEndTime != nil {
		hours.BreakEndTime = *input.BreakEndTime
	}

	if err := config.DB.Save(&hours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

type UpdateBookingSettingsInput struct {
	BufferMinutes         *int  `json:"bufferMinutes" binding:"omitempty,min=0"`
	AdvanceBookingDays    *int  `json:"advanceBookingDays" binding:"omitempty,min=0"`
	MinimumNoticeHours    *int  `json:"minimumNoticeHours" binding:"omitempty,min=0"`
	AllowSameDayBooking   *bool `json:"allowSameDayBooking"`
	MaxAppointmentsPerDay *int  `json:"maxAppointmentsPerDay" binding:"omitempty,min=0"`
}

func loadBookingSettings(db *gorm.DB) (*models.BookingSettings, error) {
	var settings models.BookingSettings
	err := db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BookingSettings{ID: 1}
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

// GetBookingSettings returns the booking form configuration
func GetBookingSettings(c *gin.Context) {
	settings, err := loadBookingSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateBookingSettings updates the booking form configuration
func UpdateBookingSettings(c *gin.Context) {
	var input UpdateBookingSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadBookingSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking settings")
		return
	}

	if input.BufferMinutes != nil {
		settings.BufferMinutes = *input.BufferMinutes
	}
	if input.AdvanceBookingDays != nil {
		settings.AdvanceBookingDays = *input.AdvanceBookingDays
	}
	if input.MinimumNoticeHours != nil {
		settings.MinimumNoticeHours = *input.MinimumNoticeHours
	}
	if input.AllowSameDayBooking != nil {
		settings.AllowSameDayBooking = *input.AllowSameDayBooking
	}
	if input.MaxAppointmentsPerDay != nil {
		settings.MaxAppointmentsPerDay = *input.MaxAppointmentsPerDay
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

type CreateBlockedDateInput struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// GetBlockedDates lists blocked dates in calendar order
func GetBlockedDates(c *gin.Context) {
	var dates []models.BlockedDate
	if err := config.DB.Order("date ASC").Find(&dates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve blocked dates")
		return
	}

	c.JSON(http.StatusOK, dates)
}

// CreateBlockedDate blocks a date for booking
func CreateBlockedDate(c *gin.Context) {
	var input CreateBlockedDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.IsValidDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var existing models.BlockedDate
	if err := config.DB.Where("date = ?", input.Date).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Date is already blocked")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	blocked := models.BlockedDate{Date: input.Date, Reason: input.Reason}
	if err := config.DB.Create(&blocked).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to block date")
		return
	}

	c.JSON(http.StatusCreated, blocked)
}

// DeleteBlockedDate unblocks a date
func DeleteBlockedDate(c *gin.Context) {
	blockedUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid blocked date ID format")
		return
	}

	result := config.DB.Where("id = ?", blockedUUID).Delete(&models.BlockedDate{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete blocked date")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Blocked date not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blocked date removed successfully"})
}
