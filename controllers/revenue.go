// controllers/revenue.go
package controllers

import (
	"net/http"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
)

// fetchRevenueRange applies the shared startDate/endDate filter.
func fetchRevenueRange(c *gin.Context) ([]models.RevenueRecord, bool) {
	query := config.DB.Model(&models.RevenueRecord{}).Order("date DESC")
	if start := c.Query("startDate"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("endDate"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var records []models.RevenueRecord
	if err := query.Find(&records).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve revenue records")
		return nil, false
	}
	return records, true
}

// GetRevenue lists revenue records, newest first, with an optional date range
func GetRevenue(c *gin.Context) {
	records, ok := fetchRevenueRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetRevenueStats summarizes revenue for the requested period
func GetRevenueStats(c *gin.Context) {
	records, ok := fetchRevenueRange(c)
	if !ok {
		return
	}

	var total, serviceRevenue, addonRevenue, tax float64
	byService := make(map[string]float64)
	for _, r := range records {
		total += r.Total
		serviceRevenue += r.ServicePrice
		addonRevenue += r.AddonsTotal
		tax += r.Tax
		byService[r.ServiceName] += r.Total
	}

	avg := 0.0
	if len(records) > 0 {
		avg = models.Round2(total / float64(len(records)))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":          len(records),
		"total":          models.Round2(total),
		"serviceRevenue": models.Round2(serviceRevenue),
		"addonRevenue":   models.Round2(addonRevenue),
		"tax":            models.Round2(tax),
		"averageSale":    avg,
		"byService":      byService,
	})
}
