// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the admin home screen summary: today's
// schedule, upcoming appointments, this month's revenue and customer count.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := now.Format(utils.DateLayout)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(utils.DateLayout)

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
		return
	}

	var monthlyRevenue float64
	if err := config.DB.Model(&models.RevenueRecord{}).
		Where("date >= ?", firstOfMonth).
		Select("COALESCE(SUM(total), 0)").
		Scan(&monthlyRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sum revenue")
		return
	}

	var todaysAppointments []models.Appointment
	if err := config.DB.Where("date = ?", today).
		Order("time ASC").
		Find(&todaysAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve today's appointments")
		return
	}

	weekAhead := now.AddDate(0, 0, 7).Format(utils.DateLayout)
	var upcoming []models.Appointment
	if err := config.DB.Where("date > ? AND date <= ? AND status IN ?", today, weekAhead,
		[]string{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Order("date ASC").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve upcoming appointments")
		return
	}

	var monthExpenses float64
	if err := config.DB.Model(&models.Expense{}).
		Where("date >= ?", firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthExpenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sum expenses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":       totalCustomers,
		"monthlyRevenue":       models.Round2(monthlyRevenue),
		"monthlyExpenses":      models.Round2(monthExpenses),
		"todaysAppointments":   todaysAppointments,
		"upcomingAppointments": upcoming,
	})
}
