// controllers/reports.go
package controllers

import (
	"net/http"
	"time"

	"serenity-backend/analytics"
	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles the appointment reporting endpoints
type ReportController struct{}

// reportRange resolves the startDate/endDate query params, defaulting to the
// current calendar month.
func reportRange(c *gin.Context) (start, end string, ok bool) {
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start = c.DefaultQuery("startDate", firstOfMonth.Format(utils.DateLayout))
	end = c.DefaultQuery("endDate", firstOfMonth.AddDate(0, 1, -1).Format(utils.DateLayout))
	if !utils.IsValidDate(start) || !utils.IsValidDate(end) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
		return "", "", false
	}
	return start, end, true
}

// priorWindow returns the equal-length window immediately before [start, end].
func priorWindow(start, end string) (string, string) {
	s, err1 := utils.ParseDate(start)
	e, err2 := utils.ParseDate(end)
	if err1 != nil || err2 != nil {
		return "", ""
	}
	days := utils.DaysBetween(s, e) + 1
	return s.AddDate(0, 0, -days).Format(utils.DateLayout),
		s.AddDate(0, 0, -1).Format(utils.DateLayout)
}

func fetchAppointments(start, end string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := config.DB.Where("date BETWEEN ? AND ?", start, end).Find(&appts).Error
	return appts, err
}

// GetAppointmentReport returns the full appointment analytics for a period
func (rc *ReportController) GetAppointmentReport(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	appts, err := fetchAppointments(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	prevStart, prevEnd := priorWindow(start, end)
	prev, err := fetchAppointments(prevStart, prevEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prior appointments")
		return
	}

	hours, err := loadBusinessHours(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load business hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"startDate":           start,
		"endDate":             end,
		"rates":               analytics.Rates(appts),
		"utilizationRate":     analytics.UtilizationRate(appts, hours, start, end),
		"serviceDistribution": analytics.ServiceDistribution(appts),
		"weekdayDistribution": analytics.WeekdayDistribution(appts),
		"timeOfDay":           analytics.TimeOfDay(appts),
		"hourDistribution":    analytics.HourDistribution(appts),
		"statusDistribution":  analytics.StatusDistribution(appts),
		"dailyTrend":          analytics.DailyTrend(appts),
		"peaks":               analytics.Peaks(appts),
		"averageLeadTimeDays": analytics.AverageLeadTimeDays(appts),
		"periodComparison":    analytics.ComparePeriods(appts, prev),
	})
}

// GetAppointmentStats returns the compact stats card for a period
func (rc *ReportController) GetAppointmentStats(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	appts, err := fetchAppointments(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	prevStart, prevEnd := priorWindow(start, end)
	prev, err := fetchAppointments(prevStart, prevEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prior appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"startDate":        start,
		"endDate":          end,
		"rates":            analytics.Rates(appts),
		"periodComparison": analytics.ComparePeriods(appts, prev),
	})
}
