// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"sort"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/services"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an
// appointment. Customer contact fields and the package are snapshotted onto
// the appointment row.
type CreateAppointmentInput struct {
	CustomerID    *uuid.UUID `json:"customerId"`
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`

	ServiceID    *uuid.UUID `json:"serviceId"`
	ServiceName  string     `json:"serviceName"`
	ServicePrice float64    `json:"servicePrice" binding:"min=0"`

	Addons []string `json:"addons"`

	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration int    `json:"duration" binding:"min=0"`
	Status   string `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled no-show"`
	Notes    string `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for a partial
// appointment update; only provided fields mutate.
type UpdateAppointmentInput struct {
	CustomerID    *uuid.UUID `json:"customerId"`
	CustomerName  *string    `json:"customerName"`
	CustomerEmail *string    `json:"customerEmail"`
	CustomerPhone *string    `json:"customerPhone"`

	ServiceID    *uuid.UUID `json:"serviceId"`
	ServiceName  *string    `json:"serviceName"`
	ServicePrice *float64   `json:"servicePrice" binding:"omitempty,min=0"`

	Addons *[]string `json:"addons"`

	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *int    `json:"duration" binding:"omitempty,min=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled no-show"`
	Notes    *string `json:"notes"`
}

// GetAppointments retrieves appointments sorted by date desc, time desc.
// Optional filters: customerId, date, status, startDate/endDate range.
func GetAppointments(c *gin.Context) {
	query := config.DB.Model(&models.Appointment{})

	if customerID := c.Query("customerId"); customerID != "" {
		customerUUID, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", customerUUID)
	}
	if date := c.Query("date"); date != "" {
		if !utils.IsValidDate(date) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		if !models.IsValidAppointmentStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment status")
			return
		}
		query = query.Where("status = ?", status)
	}
	if start := c.Query("startDate"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("endDate"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	// Time slots are display strings, so order them by clock value here.
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		mi, erri := utils.ClockMinutes(appointments[i].Time)
		mj, errj := utils.ClockMinutes(appointments[j].Time)
		if erri != nil || errj != nil {
			return false
		}
		return mi > mj
	})

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", apptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// buildAppointment assembles an appointment row from the input, snapshotting
// the package and pricing the addon names against the addon table.
func buildAppointment(db *gorm.DB, input *CreateAppointmentInput, createdBy string) (*models.Appointment, error) {
	appt := models.Appointment{
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		ServiceID:     input.ServiceID,
		ServiceName:   input.ServiceName,
		ServicePrice:  input.ServicePrice,
		Addons:        models.StringList(input.Addons),
		Date:          input.Date,
		Time:          input.Time,
		Duration:      input.Duration,
		Status:        input.Status,
		Notes:         input.Notes,
		CreatedBy:     createdBy,
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentScheduled
	}
	if appt.Addons == nil {
		appt.Addons = models.StringList{}
	}

	if input.ServiceID != nil {
		var pkg models.Package
		if err := db.First(&pkg, "id = ?", *input.ServiceID).Error; err != nil {
			return nil, err
		}
		appt.ServiceName = pkg.Name
		appt.ServicePrice = pkg.CurrentPrice
	}

	for _, name := range appt.Addons {
		var addon models.AddOnService
		if err := db.Where("name = ?", name).First(&addon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		appt.AddonsTotal += addon.Price
	}
	appt.AddonsTotal = models.Round2(appt.AddonsTotal)

	return &appt, nil
}

// CreateAppointment creates an appointment from the admin calendar
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.ServiceID == nil && input.ServiceName == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "serviceId or serviceName is required")
		return
	}
	if !utils.IsValidDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	hour, minute, err := utils.ParseClock(input.Time)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected e.g. 9:00 AM")
		return
	}
	input.Time = utils.FormatClock(hour*60 + minute)

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	appt, err := buildAppointment(tx, &input, "admin")
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Create(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	// An appointment may be entered directly as completed after the fact.
	if appt.Status == models.AppointmentCompleted {
		if err := services.EnsureRevenueRecord(tx, appt); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record revenue")
			return
		}
		if appt.CustomerID != nil {
			if err := services.RecalculateCustomerStats(tx, *appt.CustomerID); err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
				return
			}
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointment partially updates an appointment. A status change that
// enters or leaves completed keeps the revenue record and customer stats in
// step inside the same transaction.
func UpdateAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Date != nil && !utils.IsValidDate(*input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if input.Time != nil {
		hour, minute, err := utils.ParseClock(*input.Time)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected e.g. 9:00 AM")
			return
		}
		normalized := utils.FormatClock(hour*60 + minute)
		input.Time = &normalized
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var appt models.Appointment
	if err := tx.First(&appt, "id = ?", apptUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	wasCompleted := appt.Status == models.AppointmentCompleted
	previousCustomer := appt.CustomerID

	if input.CustomerID != nil {
		appt.CustomerID = input.CustomerID
	}
	if input.CustomerName != nil {
		appt.CustomerName = *input.CustomerName
	}
	if input.CustomerEmail != nil {
		appt.CustomerEmail = *input.CustomerEmail
	}
	if input.CustomerPhone != nil {
		appt.CustomerPhone = *input.CustomerPhone
	}
	if input.ServiceID != nil {
		var pkg models.Package
		if err := tx.First(&pkg, "id = ?", *input.ServiceID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Package not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		appt.ServiceID = input.ServiceID
		appt.ServiceName = pkg.Name
		appt.ServicePrice = pkg.CurrentPrice
	}
	if input.ServiceName != nil {
		appt.ServiceName = *input.ServiceName
	}
	if input.ServicePrice != nil {
		appt.ServicePrice = *input.ServicePrice
	}
	if input.Addons != nil {
		appt.Addons = models.StringList(*input.Addons)
		appt.AddonsTotal = 0
		for _, name := range appt.Addons {
			var addon models.AddOnService
			if err := tx.Where("name = ?", name).First(&addon).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			appt.AddonsTotal += addon.Price
		}
		appt.AddonsTotal = models.Round2(appt.AddonsTotal)
	}
	if input.Date != nil {
		appt.Date = *input.Date
	}
	if input.Time != nil {
		appt.Time = *input.Time
	}
	if input.Duration != nil {
		appt.Duration = *input.Duration
	}
	if input.Status != nil {
		appt.Status = *input.Status
	}
	if input.Notes != nil {
		appt.Notes = *input.Notes
	}

	if err := tx.Save(&appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	// Edits to the billed amounts or the date of a still-completed appointment
	// invalidate the derived revenue record and cached stats just like a
	// status change does.
	billingChanged := input.ServiceID != nil || input.ServiceName != nil ||
		input.ServicePrice != nil || input.Addons != nil || input.Date != nil

	isCompleted := appt.Status == models.AppointmentCompleted
	if wasCompleted && (!isCompleted || billingChanged) {
		if err := services.RemoveRevenueRecord(tx, appt.ID); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove revenue record")
			return
		}
	}
	if isCompleted && (!wasCompleted || billingChanged) {
		if err := services.EnsureRevenueRecord(tx, &appt); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record revenue")
			return
		}
	}
	if wasCompleted != isCompleted || (isCompleted && (input.CustomerID != nil || billingChanged)) {
		for _, customerID := range []*uuid.UUID{previousCustomer, appt.CustomerID} {
			if customerID == nil {
				continue
			}
			if err := services.RecalculateCustomerStats(tx, *customerID); err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
				return
			}
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment and, when it was completed, its
// revenue record and the customer's cached stats.
func DeleteAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var appt models.Appointment
	if err := tx.First(&appt, "id = ?", apptUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Delete(&appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	if appt.Status == models.AppointmentCompleted {
		if err := services.RemoveRevenueRecord(tx, appt.ID); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove revenue record")
			return
		}
		if appt.CustomerID != nil {
			if err := services.RecalculateCustomerStats(tx, *appt.CustomerID); err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
				return
			}
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
