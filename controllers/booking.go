// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingInput is what the public booking form submits.
type BookingInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`

	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Addons    []string  `json:"addons"`

	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration int    `json:"duration" binding:"min=0"`
	Notes    string `json:"notes"`
}

// CreateBooking handles the public booking form. If the email matches an
// existing customer the appointment links to that customer instead of creating
// a duplicate.
func CreateBooking(c *gin.Context) {
	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	email := strings.ToLower(input.Email)

	var blocked models.BlockedDate
	if err := config.DB.Where("date = ?", input.Date).First(&blocked).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "The studio is closed on this date")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var bookingSettings models.BookingSettings
	if err := config.DB.First(&bookingSettings, 1).Error; err == nil && bookingSettings.MaxAppointmentsPerDay > 0 {
		var booked int64
		config.DB.Model(&models.Appointment{}).
			Where("date = ? AND status NOT IN ?", input.Date,
				[]string{models.AppointmentCancelled, models.AppointmentNoShow}).
			Count(&booked)
		if booked >= int64(bookingSettings.MaxAppointmentsPerDay) {
			utils.RespondWithError(c, http.StatusConflict, "This date is fully booked")
			return
		}
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Dedup customers by email: link to the existing record when one exists.
	// A soft-deleted customer who rebooks gets their record restored rather
	// than a collision with the unique email index.
	var customer models.Customer
	err = tx.Where("email = ?", email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		revived, reviveErr := reviveCustomer(tx, email, func(cust *models.Customer) {
			cust.FirstName = input.FirstName
			cust.LastName = input.LastName
			cust.Phone = input.Phone
			cust.Status = models.CustomerActive
		})
		switch {
		case reviveErr == nil:
			customer = *revived
		case errors.Is(reviveErr, gorm.ErrRecordNotFound):
			customer = models.Customer{
				FirstName: input.FirstName,
				LastName:  input.LastName,
				Email:     email,
				Phone:     input.Phone,
				Status:    models.CustomerActive,
			}
			if err := tx.Create(&customer).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
				return
			}
			if err := tx.Create(&models.CustomerHealthInfo{CustomerID: customer.ID}).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create health info")
				return
			}
			if err := tx.Create(&models.CustomerPreferences{CustomerID: customer.ID}).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create preferences")
				return
			}
		default:
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	} else if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	apptInput := CreateAppointmentInput{
		CustomerID:    &customer.ID,
		CustomerName:  input.FirstName + " " + input.LastName,
		CustomerEmail: email,
		CustomerPhone: input.Phone,
		ServiceID:     &input.ServiceID,
		Addons:        input.Addons,
		Date:          input.Date,
		Time:          input.Time,
		Duration:      input.Duration,
		Notes:         input.Notes,
	}
	appt, err := buildAppointment(tx, &apptInput, "customer")
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	appt.ConfirmationCode = utils.GenerateRandomString(6)

	if err := tx.Create(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, appt)
}
